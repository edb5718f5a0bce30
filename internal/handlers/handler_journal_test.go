package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleEntry(status domain.JournalStatus) *domain.JournalEntry {
	entryID := uuid.NewString()
	amount := decimal.NewFromInt(100)
	return &domain.JournalEntry{
		JournalEntryID: entryID,
		Number:         "JE-2024-0001",
		EntryDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:    "Office rent",
		Status:         status,
		TotalDebit:     amount,
		TotalCredit:    amount,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), JournalEntryID: entryID, LineNumber: 1, AccountID: "rent", AccountCode: "5010", Debit: amount, Credit: decimal.Zero},
			{LineID: uuid.NewString(), JournalEntryID: entryID, LineNumber: 2, AccountID: "cash", AccountCode: "1010", Debit: decimal.Zero, Credit: amount},
		},
	}
}

const createEntryBody = `{
	"date": "2024-03-01T00:00:00Z",
	"description": "Office rent",
	"reference": "INV-7",
	"lines": [
		{"accountID": "rent", "debit": "100", "credit": "0"},
		{"accountID": "cash", "debit": "0", "credit": "100"}
	]
}`

func (suite *HandlerTestSuite) TestCreateJournalEntry_Success() {
	entry := sampleEntry(domain.Draft)
	suite.mockJournalService.On("CreateJournalEntry", mock.Anything,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return req.Reference == "INV-7" &&
				len(req.Lines) == 2 &&
				req.Lines[0].Debit.Equal(decimal.NewFromInt(100)) &&
				req.Lines[1].Credit.Equal(decimal.NewFromInt(100))
		}), "alice").Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", createEntryBody, map[string]string{"X-User-ID": "alice"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-2024-0001", resp.Number)
	suite.Equal("2024-03-01", resp.Date)
	suite.Equal(domain.Draft, resp.Status)
	suite.Len(resp.Lines, 2)
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_Unbalanced() {
	suite.mockJournalService.On("CreateJournalEntry", mock.Anything, mock.Anything, "system").
		Return(nil, apperrors.ErrUnbalanced).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", createEntryBody, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "do not balance")
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_SingleLineRejectedAtBoundary() {
	body := `{"date":"2024-03-01T00:00:00Z","description":"x","lines":[{"accountID":"cash","debit":"1","credit":"0"}]}`

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostJournalEntry() {
	tests := []struct {
		name       string
		result     *domain.JournalEntry
		err        error
		wantStatus int
	}{
		{"posted", sampleEntry(domain.Posted), nil, http.StatusOK},
		{"already posted", nil, apperrors.ErrInvalidStatus, http.StatusConflict},
		{"missing", nil, apperrors.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockJournalService.On("PostJournalEntry", mock.Anything, "je-1", "carol").Return(tt.result, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/post", "", map[string]string{"X-User-ID": "carol"})

			suite.Equal(tt.wantStatus, w.Code)
			suite.mockJournalService.AssertExpectations(suite.T())
		})
	}
}

func (suite *HandlerTestSuite) TestReverseJournalEntry_Success() {
	reversal := sampleEntry(domain.Posted)
	reversal.ReversalOfID = "je-1"
	suite.mockJournalService.On("ReverseJournalEntry", mock.Anything, "je-1", "entered twice", "system").Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/reverse", `{"reason":"entered twice"}`, nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("je-1", resp.ReversalOfID)
}

func (suite *HandlerTestSuite) TestReverseJournalEntry_MissingReason() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries/je-1/reverse", `{}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ReverseJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListJournalEntries_Filter() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	suite.mockJournalService.On("ListJournalEntries", mock.Anything,
		mock.MatchedBy(func(f domain.JournalFilter) bool {
			return f.Status == domain.Posted &&
				f.FromDate != nil && f.FromDate.Equal(from) &&
				f.ToDate != nil && f.ToDate.Equal(to)
		})).Return([]domain.JournalEntry{*sampleEntry(domain.Posted)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=POSTED&fromDate=2024-01-01&toDate=2024-01-31", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.JournalEntries, 1)
}

func (suite *HandlerTestSuite) TestListJournalEntries_InvalidQuery() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=PENDING", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/journal-entries?fromDate=2024-02-01&toDate=2024-01-01", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteJournalEntry() {
	suite.mockJournalService.On("DeleteJournalEntry", mock.Anything, "je-1").Return(nil).Once()
	suite.mockJournalService.On("DeleteJournalEntry", mock.Anything, "je-2").Return(apperrors.ErrInvalidStatus).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/je-1", "", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/journal-entries/je-2", "", nil)
	suite.Equal(http.StatusConflict, w.Code)
}
