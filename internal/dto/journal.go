package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines a single line of a journal entry request.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Reference   string          `json:"reference" binding:"max=100"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to create a draft journal entry.
type CreateJournalEntryRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Description string                     `json:"description" binding:"required,max=500"`
	Reference   string                     `json:"reference" binding:"max=100"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// Validate checks the request's tags. Amount rules are enforced by the journal service.
func (r CreateJournalEntryRequest) Validate() error {
	return ValidateStruct(r)
}

// JournalEntryBuilder assembles a CreateJournalEntryRequest in code.
type JournalEntryBuilder struct {
	req CreateJournalEntryRequest
}

// NewJournalEntry starts a request for the given date and description.
func NewJournalEntry(date time.Time, description string) *JournalEntryBuilder {
	return &JournalEntryBuilder{req: CreateJournalEntryRequest{Date: date, Description: description}}
}

// WithReference sets the entry-level reference.
func (b *JournalEntryBuilder) WithReference(ref string) *JournalEntryBuilder {
	b.req.Reference = ref
	return b
}

// Debit appends a debit line.
func (b *JournalEntryBuilder) Debit(accountID string, amount decimal.Decimal, description string) *JournalEntryBuilder {
	b.req.Lines = append(b.req.Lines, CreateJournalLineRequest{
		AccountID:   accountID,
		Description: description,
		Debit:       amount,
		Credit:      decimal.Zero,
	})
	return b
}

// Credit appends a credit line.
func (b *JournalEntryBuilder) Credit(accountID string, amount decimal.Decimal, description string) *JournalEntryBuilder {
	b.req.Lines = append(b.req.Lines, CreateJournalLineRequest{
		AccountID:   accountID,
		Description: description,
		Debit:       decimal.Zero,
		Credit:      amount,
	})
	return b
}

// Line appends a raw line, including malformed ones.
func (b *JournalEntryBuilder) Line(line CreateJournalLineRequest) *JournalEntryBuilder {
	b.req.Lines = append(b.req.Lines, line)
	return b
}

// Build validates the tags and returns the request.
func (b *JournalEntryBuilder) Build() (CreateJournalEntryRequest, error) {
	if err := b.req.Validate(); err != nil {
		return CreateJournalEntryRequest{}, err
	}
	return b.req, nil
}

// ReverseJournalEntryRequest defines the data needed to reverse a posted entry.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT POSTED REVERSED"`
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
}

// ToFilter parses the query parameters into a domain filter.
func (p ListJournalEntriesParams) ToFilter() (domain.JournalFilter, error) {
	from, to, err := parseDateRange(p.FromDate, p.ToDate)
	if err != nil {
		return domain.JournalFilter{}, err
	}
	return domain.JournalFilter{Status: domain.JournalStatus(p.Status), FromDate: from, ToDate: to}, nil
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	Number         string                `json:"number"`
	Date           string                `json:"date"`
	Description    string                `json:"description"`
	Reference      string                `json:"reference"`
	Status         domain.JournalStatus  `json:"status"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	PostedAt       *time.Time            `json:"postedAt,omitempty"`
	PostedBy       string                `json:"postedBy,omitempty"`
	ReversedAt     *time.Time            `json:"reversedAt,omitempty"`
	ReversedBy     string                `json:"reversedBy,omitempty"`
	ReversalReason string                `json:"reversalReason,omitempty"`
	ReversalOfID   string                `json:"reversalOfID,omitempty"`
	ReversedByID   string                `json:"reversedByID,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID: j.JournalEntryID,
		Number:         j.Number,
		Date:           j.EntryDate.Format(DateLayout),
		Description:    j.Description,
		Reference:      j.Reference,
		Status:         j.Status,
		TotalDebit:     j.TotalDebit,
		TotalCredit:    j.TotalCredit,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
		PostedAt:       j.PostedAt,
		PostedBy:       j.PostedBy,
		ReversedAt:     j.ReversedAt,
		ReversedBy:     j.ReversedBy,
		ReversalReason: j.ReversalReason,
		ReversalOfID:   j.ReversalOfID,
		ReversedByID:   j.ReversedByID,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:      l.LineID,
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				AccountName: l.AccountName,
				Description: l.Description,
				Reference:   l.Reference,
				Debit:       l.Debit,
				Credit:      l.Credit,
			}
		}
	}
	return resp
}

// ListJournalEntriesResponse wraps the list of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
}

// ToListJournalEntriesResponse converts domain entries to the list DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry) ListJournalEntriesResponse {
	res := ListJournalEntriesResponse{JournalEntries: make([]JournalEntryResponse, len(entries))}
	for i := range entries {
		res.JournalEntries[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
