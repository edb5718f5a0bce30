package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceEntry is one account's line in a trial balance. At most one of
// DebitBalance and CreditBalance is non-zero.
type TrialBalanceEntry struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	NetBalance    decimal.Decimal `json:"netBalance"` // Σdebit − Σcredit
}

// TrialBalance is a point-in-time summary of the general ledger.
type TrialBalance struct {
	AsOfDate     time.Time           `json:"asOfDate"`
	Entries      []TrialBalanceEntry `json:"entries"`
	TotalDebits  decimal.Decimal     `json:"totalDebits"`
	TotalCredits decimal.Decimal     `json:"totalCredits"`
	IsBalanced   bool                `json:"isBalanced"`
	GeneratedAt  time.Time           `json:"generatedAt"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	FromDate  time.Time       `json:"fromDate"`
	ToDate    time.Time       `json:"toDate"`
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"` // Total revenue minus total expenses
}
