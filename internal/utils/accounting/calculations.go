package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest debit/credit difference still treated as balanced.
var Tolerance = decimal.RequireFromString("0.01")

// CalculateSignedAmount applies the account's normal side to a debit/credit pair.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	if accountType.NormalSide() == domain.DebitSide {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// ApplyToAccount adds a posted line's amounts to the account's accumulators and
// recomputes its balance on the account's normal side.
func ApplyToAccount(acc *domain.Account, debit, credit decimal.Decimal) error {
	acc.DebitTotal = acc.DebitTotal.Add(debit)
	acc.CreditTotal = acc.CreditTotal.Add(credit)
	balance, err := CalculateSignedAmount(acc.DebitTotal, acc.CreditTotal, acc.AccountType)
	if err != nil {
		return fmt.Errorf("account %s: %w", acc.AccountID, err)
	}
	acc.Balance = balance
	return nil
}

// SumLines returns total debits and total credits of the given lines.
func SumLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether |a - b| is within Tolerance. Journal entries use this
// inclusive check.
func IsBalanced(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// TotalsAgree reports whether |a - b| is strictly below Tolerance. Trial balances use
// this strict check.
func TotalsAgree(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// SplitNet maps a raw net (Σdebit − Σcredit) to trial-balance columns using its
// arithmetic sign only.
func SplitNet(net decimal.Decimal) (debitBalance, creditBalance decimal.Decimal) {
	if net.IsPositive() {
		return net, decimal.Zero
	}
	return decimal.Zero, net.Neg()
}
