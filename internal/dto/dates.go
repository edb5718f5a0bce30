package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
)

// DateLayout is the wire format for calendar dates in query strings and reports.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return &t, nil
}

func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	from, err := ParseDate(fromStr)
	if err != nil {
		return nil, nil, err
	}
	to, err := ParseDate(toStr)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: fromDate must be before or equal to toDate", apperrors.ErrValidation)
	}
	return from, to, nil
}
