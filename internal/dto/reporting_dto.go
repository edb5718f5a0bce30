package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf        string                    `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	IsBalanced  bool                      `json:"isBalanced"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Totals      struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:        tb.AsOfDate.Format(DateLayout),
		Rows:        make([]TrialBalanceRowResponse, len(tb.Entries)),
		IsBalanced:  tb.IsBalanced,
		GeneratedAt: tb.GeneratedAt,
	}

	for i, row := range tb.Entries {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
			NetBalance:    row.NetBalance,
		}
	}

	response.Totals.Debit = tb.TotalDebits
	response.Totals.Credit = tb.TotalCredits

	return response
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.FromDate.Format(DateLayout),
		ToDate:   report.ToDate.Format(DateLayout),
		Revenue:  make([]AccountAmountResponse, len(report.Revenue)),
		Expenses: make([]AccountAmountResponse, len(report.Expenses)),
	}

	totalRevenue := decimal.Zero
	for i, rev := range report.Revenue {
		response.Revenue[i] = AccountAmountResponse{
			AccountID: rev.AccountID,
			Code:      rev.Code,
			Name:      rev.Name,
			Amount:    rev.NetAmount,
		}
		totalRevenue = totalRevenue.Add(rev.NetAmount)
	}

	totalExpenses := decimal.Zero
	for i, exp := range report.Expenses {
		response.Expenses[i] = AccountAmountResponse{
			AccountID: exp.AccountID,
			Code:      exp.Code,
			Name:      exp.Name,
			Amount:    exp.NetAmount,
		}
		totalExpenses = totalExpenses.Add(exp.NetAmount)
	}

	response.Summary.TotalRevenue = totalRevenue
	response.Summary.TotalExpenses = totalExpenses
	response.Summary.NetProfit = report.NetProfit

	return response
}
