package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists the valid account types in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalSide indicates the side on which an account's balance is positive.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// NormalSide returns DebitSide for assets and expenses and CreditSide otherwise.
func (t AccountType) NormalSide() NormalSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"` // Digits only, unique across the chart
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID"` // Empty for root accounts
	Level           int             `json:"level"`           // 1 for root accounts
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // Signed on the account's normal side
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	AuditFields
}

// AccountFilter narrows account listings. Zero values match everything.
type AccountFilter struct {
	AccountType AccountType
	ActiveOnly  bool
}
