package mapping

import (
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		Description:     d.Description,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: nullableString(d.ParentAccountID),
		Level:           d.Level,
		IsActive:        d.IsActive,
		Balance:         d.Balance,
		DebitTotal:      d.DebitTotal,
		CreditTotal:     d.CreditTotal,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		Description:     m.Description,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: derefString(m.ParentAccountID),
		Level:           m.Level,
		IsActive:        m.IsActive,
		Balance:         m.Balance,
		DebitTotal:      m.DebitTotal,
		CreditTotal:     m.CreditTotal,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
