package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

type accountRepository struct {
	v view
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var found domain.Account
	err := r.v.read(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok {
			return apperrors.ErrNotFound
		}
		found = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var found *domain.Account
	err := r.v.read(func(st *state) error {
		for _, acc := range st.accounts {
			if acc.Code == code {
				a := acc
				found = &a
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	err := r.v.read(func(st *state) error {
		for _, id := range accountIDs {
			if acc, ok := st.accounts[id]; ok {
				result[id] = acc
			}
		}
		return nil
	})
	return result, err
}

// FindAccountsByIDsForUpdate is a plain lookup; the transaction already holds the store lock.
func (r *accountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, accountIDs)
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.v.read(func(st *state) error {
		accounts = make([]domain.Account, 0, len(st.accounts))
		for _, acc := range st.accounts {
			if filter.AccountType != "" && acc.AccountType != filter.AccountType {
				continue
			}
			if filter.ActiveOnly && !acc.IsActive {
				continue
			}
			accounts = append(accounts, acc)
		}
		return nil
	})
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, err
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.v.write(func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrValidation, account.AccountID)
		}
		for _, acc := range st.accounts {
			if acc.Code == account.Code {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, account.Code)
			}
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.accounts[account.AccountID]; !ok {
			return apperrors.ErrNotFound
		}
		for id, acc := range st.accounts {
			if id != account.AccountID && acc.Code == account.Code {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, account.Code)
			}
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.accounts[accountID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(st.accounts, accountID)
		return nil
	})
}

func (r *accountRepository) UpdateAccountBalances(ctx context.Context, accounts []domain.Account) error {
	return r.v.write(func(st *state) error {
		for _, updated := range accounts {
			acc, ok := st.accounts[updated.AccountID]
			if !ok {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, updated.AccountID)
			}
			acc.Balance = updated.Balance
			acc.DebitTotal = updated.DebitTotal
			acc.CreditTotal = updated.CreditTotal
			acc.LastUpdatedAt = updated.LastUpdatedAt
			acc.LastUpdatedBy = updated.LastUpdatedBy
			st.accounts[acc.AccountID] = acc
		}
		return nil
	})
}
