package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerQueryParams defines query parameters for the general ledger.
type LedgerQueryParams struct {
	AccountID      string  `form:"accountID"`
	JournalEntryID string  `form:"journalEntryID"`
	FromDate       string  `form:"fromDate"`
	ToDate         string  `form:"toDate"`
	Search         string  `form:"q" binding:"max=200"`
	Limit          int     `form:"limit,default=100" binding:"min=0,max=1000"`
	NextToken      *string `form:"nextToken"`
}

// ToFilter parses the query parameters into a domain filter.
func (p LedgerQueryParams) ToFilter() (domain.LedgerFilter, error) {
	from, to, err := parseDateRange(p.FromDate, p.ToDate)
	if err != nil {
		return domain.LedgerFilter{}, err
	}
	return domain.LedgerFilter{
		AccountID:      p.AccountID,
		JournalEntryID: p.JournalEntryID,
		FromDate:       from,
		ToDate:         to,
		Search:         p.Search,
		Limit:          p.Limit,
		NextToken:      p.NextToken,
	}, nil
}

// LedgerEntryResponse defines the data returned for a general-ledger row.
type LedgerEntryResponse struct {
	LedgerEntryID  string          `json:"ledgerEntryID"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	JournalEntryID string          `json:"journalEntryID"`
	JournalNumber  string          `json:"journalNumber"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListLedgerResponse wraps a page of ledger rows.
type ListLedgerResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListLedgerResponse converts domain rows to the list DTO.
func ToListLedgerResponse(entries []domain.LedgerEntry, nextToken *string) ListLedgerResponse {
	res := ListLedgerResponse{
		Entries:   make([]LedgerEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i, e := range entries {
		res.Entries[i] = LedgerEntryResponse{
			LedgerEntryID:  e.LedgerEntryID,
			AccountID:      e.AccountID,
			AccountCode:    e.AccountCode,
			AccountName:    e.AccountName,
			JournalEntryID: e.JournalEntryID,
			JournalNumber:  e.JournalNumber,
			Date:           e.EntryDate.Format(DateLayout),
			Description:    e.Description,
			Reference:      e.Reference,
			Debit:          e.Debit,
			Credit:         e.Credit,
			RunningBalance: e.RunningBalance,
			CreatedAt:      e.CreatedAt,
		}
	}
	return res
}
