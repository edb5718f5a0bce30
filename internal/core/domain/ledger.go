package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the general-ledger projection of one posted journal line.
type LedgerEntry struct {
	LedgerEntryID  string          `json:"ledgerEntryID"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	JournalEntryID string          `json:"journalEntryID"`
	JournalNumber  string          `json:"journalNumber"`
	LineID         string          `json:"lineID"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Raw Σdebit − Σcredit for the account
	Sequence       int64           `json:"sequence"`       // Insertion order across the ledger
	CreatedAt      time.Time       `json:"createdAt"`
}

// CanonicalLess orders ledger rows by entry date, then account code, then insertion sequence.
func CanonicalLess(a, b LedgerEntry) bool {
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.Before(b.EntryDate)
	}
	if a.AccountCode != b.AccountCode {
		return a.AccountCode < b.AccountCode
	}
	return a.Sequence < b.Sequence
}

// LedgerFilter narrows general-ledger queries. Zero values match everything.
type LedgerFilter struct {
	AccountID      string
	JournalEntryID string
	FromDate       *time.Time
	ToDate         *time.Time
	Search         string // Case-insensitive match on description, reference, account code or name
	Limit          int
	NextToken      *string
}
