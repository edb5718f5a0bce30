package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string          `db:"journal_entry_id"`
	Number         string          `db:"number"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	Reference      string          `db:"reference"`
	Status         JournalStatus   `db:"status"`
	TotalDebit     decimal.Decimal `db:"total_debit"`
	TotalCredit    decimal.Decimal `db:"total_credit"`
	PostedAt       *time.Time      `db:"posted_at"`
	PostedBy       *string         `db:"posted_by"`
	ReversedAt     *time.Time      `db:"reversed_at"`
	ReversedBy     *string         `db:"reversed_by"`
	ReversalReason *string         `db:"reversal_reason"`
	ReversalOfID   *string         `db:"reversal_of_id"`
	ReversedByID   *string         `db:"reversed_by_id"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	LineNumber     int             `db:"line_number"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	AccountName    string          `db:"account_name"`
	Description    string          `db:"description"`
	Reference      string          `db:"reference"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
}
