package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	bookkeepingSuite
}

func ptr[T any](v T) *T { return &v }

func (s *AccountServiceTestSuite) TestCreateAccount() {
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	svc := services.NewAccountService(s.store, services.WithClock(func() time.Time { return fixed }))

	root, err := svc.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1000", Name: " Current Assets ", AccountType: domain.Asset}, "tester")
	s.Require().NoError(err)
	s.Equal("Current Assets", root.Name)
	s.Equal(1, root.Level)
	s.True(root.IsActive)
	s.True(root.Balance.IsZero())
	s.Equal(fixed, root.CreatedAt)
	s.Equal("tester", root.CreatedBy)

	child, err := svc.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code: "1010", Name: "Cash", AccountType: domain.Asset, ParentAccountID: &root.AccountID,
	}, "tester")
	s.Require().NoError(err)
	s.Equal(root.AccountID, child.ParentAccountID)
	s.Equal(2, child.Level)

	stored := s.account(child.AccountID)
	s.Equal("1010", stored.Code)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Rejections() {
	s.createAccount("1000", "Cash", domain.Asset)

	tests := []struct {
		name    string
		req     dto.CreateAccountRequest
		wantErr error
	}{
		{"duplicate code", dto.CreateAccountRequest{Code: "1000", Name: "Other", AccountType: domain.Asset}, apperrors.ErrDuplicateCode},
		{"non-digit code", dto.CreateAccountRequest{Code: "10A0", Name: "Bad", AccountType: domain.Asset}, apperrors.ErrInvalidCode},
		{"empty code", dto.CreateAccountRequest{Code: "  ", Name: "Bad", AccountType: domain.Asset}, apperrors.ErrInvalidCode},
		{"unknown type", dto.CreateAccountRequest{Code: "1001", Name: "Bad", AccountType: "INCOME"}, apperrors.ErrInvalidType},
		{"unknown parent", dto.CreateAccountRequest{Code: "1001", Name: "Orphan", AccountType: domain.Asset, ParentAccountID: ptr("missing")}, apperrors.ErrUnknownAccount},
		{"blank name", dto.CreateAccountRequest{Code: "1001", Name: " ", AccountType: domain.Asset}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.container.Account.CreateAccount(s.ctx, tt.req, "tester")
			s.ErrorIs(err, tt.wantErr)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	all, err := s.container.Account.ListAccounts(s.ctx, domain.AccountFilter{})
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *AccountServiceTestSuite) TestListAccounts() {
	s.createAccount("4000", "Sales", domain.Revenue)
	s.createAccount("1000", "Cash", domain.Asset)
	bank := s.createAccount("1100", "Bank", domain.Asset)
	_, err := s.container.Account.UpdateAccount(s.ctx, bank.AccountID, dto.UpdateAccountRequest{IsActive: ptr(false)}, "tester")
	s.Require().NoError(err)

	all, err := s.container.Account.ListAccounts(s.ctx, domain.AccountFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"1000", "1100", "4000"}, []string{all[0].Code, all[1].Code, all[2].Code})

	assets, err := s.container.Account.ListAccounts(s.ctx, domain.AccountFilter{AccountType: domain.Asset, ActiveOnly: true})
	s.Require().NoError(err)
	s.Require().Len(assets, 1)
	s.Equal("1000", assets[0].Code)

	_, err = s.container.Account.ListAccounts(s.ctx, domain.AccountFilter{AccountType: "INCOME"})
	s.ErrorIs(err, apperrors.ErrInvalidType)
}

func (s *AccountServiceTestSuite) TestUpdateAccount() {
	cash := s.createAccount("1000", "Cash", domain.Asset)
	s.createAccount("1100", "Bank", domain.Asset)

	updated, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{
		Code:        ptr("1010"),
		Name:        ptr("Petty Cash"),
		Description: ptr("Drawer float"),
	}, "editor")
	s.Require().NoError(err)
	s.Equal("1010", updated.Code)
	s.Equal("Petty Cash", updated.Name)
	s.Equal("Drawer float", updated.Description)
	s.Equal("editor", updated.LastUpdatedBy)
	s.Equal("tester", updated.CreatedBy)

	s.Run("same code is a no-op", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{Code: ptr("1010")}, "editor")
		s.NoError(err)
	})

	s.Run("collision with another account", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{Code: ptr("1100")}, "editor")
		s.ErrorIs(err, apperrors.ErrDuplicateCode)
	})

	s.Run("invalid code", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{Code: ptr("ten")}, "editor")
		s.ErrorIs(err, apperrors.ErrInvalidCode)
	})

	s.Run("not found", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, "missing", dto.UpdateAccountRequest{Name: ptr("x")}, "editor")
		s.ErrorIs(err, apperrors.ErrNotFound)
	})
}

func (s *AccountServiceTestSuite) TestUpdateAccount_CodeLockedByActivity() {
	cash := s.createAccount("1000", "Cash", domain.Asset)
	sales := s.createAccount("4000", "Sales", domain.Revenue)
	s.post(day(2024, 1, 2), cash.AccountID, sales.AccountID, amount("10"))

	_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{Code: ptr("1001")}, "editor")
	s.ErrorIs(err, apperrors.ErrHasActivity)

	renamed, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{Name: ptr("Cash on Hand")}, "editor")
	s.Require().NoError(err)
	s.Equal("Cash on Hand", renamed.Name)
	s.assertDecimal("10", renamed.Balance)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_Hierarchy() {
	assets := s.createAccount("1000", "Assets", domain.Asset)
	current := s.createAccount("1100", "Current Assets", domain.Asset)
	cash := s.createAccount("1110", "Cash", domain.Asset)

	_, err := s.container.Account.UpdateAccount(s.ctx, current.AccountID, dto.UpdateAccountRequest{ParentAccountID: &assets.AccountID}, "editor")
	s.Require().NoError(err)
	_, err = s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{ParentAccountID: &current.AccountID}, "editor")
	s.Require().NoError(err)
	s.Equal(3, s.account(cash.AccountID).Level)

	s.Run("cycles are rejected", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, assets.AccountID, dto.UpdateAccountRequest{ParentAccountID: &cash.AccountID}, "editor")
		s.ErrorIs(err, apperrors.ErrValidation)
		_, err = s.container.Account.UpdateAccount(s.ctx, assets.AccountID, dto.UpdateAccountRequest{ParentAccountID: &assets.AccountID}, "editor")
		s.ErrorIs(err, apperrors.ErrValidation)
		s.Equal(1, s.account(assets.AccountID).Level)
	})

	s.Run("unknown parent", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{ParentAccountID: ptr("missing")}, "editor")
		s.ErrorIs(err, apperrors.ErrUnknownAccount)
	})

	s.Run("detaching relevels descendants", func() {
		_, err := s.container.Account.UpdateAccount(s.ctx, current.AccountID, dto.UpdateAccountRequest{ParentAccountID: ptr("")}, "editor")
		s.Require().NoError(err)
		s.Equal(1, s.account(current.AccountID).Level)
		s.Equal("", s.account(current.AccountID).ParentAccountID)
		s.Equal(2, s.account(cash.AccountID).Level)
	})
}

func (s *AccountServiceTestSuite) TestDeleteAccount() {
	parent := s.createAccount("1000", "Assets", domain.Asset)
	cash := s.createAccount("1010", "Cash", domain.Asset)
	sales := s.createAccount("4000", "Sales", domain.Revenue)
	unused := s.createAccount("6000", "Unused", domain.Expense)
	drafted := s.createAccount("6100", "Supplies", domain.Expense)
	_, err := s.container.Account.UpdateAccount(s.ctx, cash.AccountID, dto.UpdateAccountRequest{ParentAccountID: &parent.AccountID}, "editor")
	s.Require().NoError(err)
	s.post(day(2024, 1, 2), cash.AccountID, sales.AccountID, amount("10"))
	s.draft(day(2024, 1, 3), drafted.AccountID, sales.AccountID, amount("4"))

	tests := []struct {
		name      string
		accountID string
		wantErr   error
	}{
		{"referenced by the ledger", cash.AccountID, apperrors.ErrHasActivity},
		{"referenced by a draft", drafted.AccountID, apperrors.ErrHasActivity},
		{"has child accounts", parent.AccountID, apperrors.ErrHasChildren},
		{"not found", "missing", apperrors.ErrNotFound},
		{"unused", unused.AccountID, nil},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.container.Account.DeleteAccount(s.ctx, tt.accountID)
			if tt.wantErr == nil {
				s.Require().NoError(err)
				_, err = s.container.Account.GetAccountByID(s.ctx, tt.accountID)
				s.ErrorIs(err, apperrors.ErrNotFound)
				return
			}
			s.ErrorIs(err, tt.wantErr)
		})
	}

	s.Equal("1010", s.account(cash.AccountID).Code)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_DraftKeepsAccountPostable() {
	supplies := s.createAccount("6100", "Supplies", domain.Expense)
	cash := s.createAccount("1000", "Cash", domain.Asset)
	entry := s.draft(day(2024, 1, 3), supplies.AccountID, cash.AccountID, amount("4"))

	err := s.container.Account.DeleteAccount(s.ctx, cash.AccountID)
	s.ErrorIs(err, apperrors.ErrHasActivity)

	posted, err := s.container.Journal.PostJournalEntry(s.ctx, entry.JournalEntryID, "poster")
	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)

	// Once the only referencing draft is gone the account can be removed.
	other := s.createAccount("6200", "Postage", domain.Expense)
	draft := s.draft(day(2024, 1, 4), other.AccountID, supplies.AccountID, amount("1"))
	s.Require().NoError(s.container.Journal.DeleteJournalEntry(s.ctx, draft.JournalEntryID))
	s.NoError(s.container.Account.DeleteAccount(s.ctx, other.AccountID))
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
