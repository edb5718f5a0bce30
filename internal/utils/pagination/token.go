package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// LedgerCursor identifies a position in the canonical general-ledger order.
type LedgerCursor struct {
	EntryDate   time.Time
	AccountCode string
	Sequence    int64
}

// EncodeLedgerToken creates a base64 encoded token from the last row of a ledger page.
func EncodeLedgerToken(cursor LedgerCursor) string {
	return EncodeMultiFieldToken(
		cursor.EntryDate.Format(timeFormat),
		cursor.AccountCode,
		strconv.FormatInt(cursor.Sequence, 10),
	)
}

// DecodeLedgerToken parses a token produced by EncodeLedgerToken.
func DecodeLedgerToken(token string) (LedgerCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return LedgerCursor{}, err
	}
	if len(parts) != 3 {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	sequence, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	return LedgerCursor{EntryDate: entryDate, AccountCode: parts[1], Sequence: sequence}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
