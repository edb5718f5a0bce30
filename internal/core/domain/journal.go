package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry is a dated set of balanced debit and credit lines.
type JournalEntry struct {
	JournalEntryID string          `json:"journalEntryID"`
	Number         string          `json:"number"` // JE-<year>-<seq>
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Status         JournalStatus   `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Lines          []JournalLine   `json:"lines"`

	PostedAt       *time.Time `json:"postedAt,omitempty"`
	PostedBy       string     `json:"postedBy,omitempty"`
	ReversedAt     *time.Time `json:"reversedAt,omitempty"`
	ReversedBy     string     `json:"reversedBy,omitempty"`
	ReversalReason string     `json:"reversalReason,omitempty"`
	ReversalOfID   string     `json:"reversalOfID,omitempty"` // Set on the offsetting entry
	ReversedByID   string     `json:"reversedByID,omitempty"` // Set on the original entry
	AuditFields
}

// IsReversal reports whether the entry was generated to offset another entry.
func (j *JournalEntry) IsReversal() bool {
	return j.ReversalOfID != ""
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"` // Snapshot at creation time
	AccountName    string          `json:"accountName"` // Snapshot at creation time
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// Validate checks that exactly one of debit and credit is positive and neither is negative.
func (l JournalLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("line %d: amounts must not be negative", l.LineNumber)
	}
	hasDebit := l.Debit.IsPositive()
	hasCredit := l.Credit.IsPositive()
	if hasDebit == hasCredit {
		return fmt.Errorf("line %d: exactly one of debit or credit must be positive", l.LineNumber)
	}
	return nil
}

// JournalFilter narrows journal listings. Zero values match everything.
type JournalFilter struct {
	Status   JournalStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// FormatJournalNumber renders the display number for the seq-th entry of a year.
func FormatJournalNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%04d", year, seq)
}
