package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestQueryLedger_PassesFilterAndToken() {
	next := "opaque-token"
	rows := []domain.LedgerEntry{{
		LedgerEntryID:  "le-1",
		AccountID:      "cash",
		AccountCode:    "1010",
		JournalNumber:  "JE-2024-0001",
		EntryDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Debit:          decimal.NewFromInt(100),
		Credit:         decimal.Zero,
		RunningBalance: decimal.NewFromInt(100),
	}}
	suite.mockLedgerService.On("QueryGeneralLedger", mock.Anything,
		mock.MatchedBy(func(f domain.LedgerFilter) bool {
			return f.AccountID == "cash" && f.Search == "rent" && f.Limit == 1 &&
				f.NextToken != nil && *f.NextToken == "prev" &&
				f.FromDate != nil && f.ToDate == nil
		})).Return(rows, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger?accountID=cash&q=rent&limit=1&nextToken=prev&fromDate=2024-03-01", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("2024-03-01", resp.Entries[0].Date)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestQueryLedger_DefaultLimit() {
	suite.mockLedgerService.On("QueryGeneralLedger", mock.Anything,
		mock.MatchedBy(func(f domain.LedgerFilter) bool { return f.Limit == 100 })).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"entries":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestQueryLedger_InvalidParams() {
	w := suite.do(http.MethodGet, "/api/v1/ledger?fromDate=03/01/2024", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/ledger?limit=-1", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestQueryLedger_BadToken() {
	suite.mockLedgerService.On("QueryGeneralLedger", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger?nextToken=garbage", "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	tb := &domain.TrialBalance{
		AsOfDate: asOf,
		Entries: []domain.TrialBalanceEntry{
			{AccountID: "cash", AccountCode: "1010", AccountType: domain.Asset, DebitBalance: decimal.NewFromInt(100), CreditBalance: decimal.Zero, NetBalance: decimal.NewFromInt(100)},
			{AccountID: "rev", AccountCode: "4000", AccountType: domain.Revenue, DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(100), NetBalance: decimal.NewFromInt(-100)},
		},
		TotalDebits:  decimal.NewFromInt(100),
		TotalCredits: decimal.NewFromInt(100),
		IsBalanced:   true,
		GeneratedAt:  asOf,
	}
	suite.mockReportingService.On("GenerateTrialBalance", mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) })).Return(tb, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2024-03-31", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-31", resp.AsOf)
	suite.True(resp.IsBalanced)
	suite.Len(resp.Rows, 2)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func (suite *HandlerTestSuite) TestTrialBalance_InvalidDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=yesterday", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProfitAndLoss() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	report := &domain.PAndLReport{
		FromDate:  from,
		ToDate:    to,
		Revenue:   []domain.AccountAmount{{AccountID: "rev", Code: "4000", NetAmount: decimal.NewFromInt(500)}},
		Expenses:  []domain.AccountAmount{{AccountID: "rent", Code: "5010", NetAmount: decimal.NewFromInt(200)}},
		NetProfit: decimal.NewFromInt(300),
	}
	suite.mockReportingService.On("ProfitAndLoss", mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(from) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(to) })).Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?fromDate=2024-01-01&toDate=2024-03-31", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProfitAndLossResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.NewFromInt(300).Equal(resp.Summary.NetProfit))
	suite.True(decimal.NewFromInt(500).Equal(resp.Summary.TotalRevenue))
	suite.True(decimal.NewFromInt(200).Equal(resp.Summary.TotalExpenses))
}

func (suite *HandlerTestSuite) TestProfitAndLoss_InvertedRange() {
	suite.mockReportingService.On("ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: fromDate after toDate", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?fromDate=2024-04-01&toDate=2024-03-31", "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}
