package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	LedgerEntryID  string          `db:"ledger_entry_id"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	AccountName    string          `db:"account_name"`
	JournalEntryID string          `db:"journal_entry_id"`
	JournalNumber  string          `db:"journal_number"`
	LineID         string          `db:"line_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	Reference      string          `db:"reference"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	Sequence       int64           `db:"sequence"`
	CreatedAt      time.Time       `db:"created_at"`
}
