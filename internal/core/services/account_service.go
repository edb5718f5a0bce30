package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	store portsrepo.Store
	now   func() time.Time
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(store portsrepo.Store, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		store: store,
		now:   time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func validateAccountCode(code string) error {
	if code == "" {
		return apperrors.ErrInvalidCode
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidCode, code)
		}
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	if err := validateAccountCode(code); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidType, req.AccountType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		AccountType: req.AccountType,
		Level:       1,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := ensureCodeAvailable(ctx, repos, code, ""); err != nil {
			return err
		}

		if req.ParentAccountID != nil && *req.ParentAccountID != "" {
			parent, err := findParent(ctx, repos, *req.ParentAccountID)
			if err != nil {
				return err
			}
			account.ParentAccountID = parent.AccountID
			account.Level = parent.Level + 1
		}

		return repos.AccountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.store.Repositories().AccountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.AccountType != "" && !filter.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidType, filter.AccountType)
	}

	accounts, err := s.store.Repositories().AccountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	var updated domain.Account

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		locked, err := repos.AccountRepo.FindAccountsByIDsForUpdate(ctx, []string{accountID})
		if err != nil {
			return err
		}
		account, ok := locked[accountID]
		if !ok {
			return apperrors.ErrNotFound
		}

		if req.Code != nil {
			code := strings.TrimSpace(*req.Code)
			if code != account.Code {
				if err := validateAccountCode(code); err != nil {
					return err
				}
				if err := ensureCodeAvailable(ctx, repos, code, account.AccountID); err != nil {
					return err
				}
				// Ledger rows carry the code they were posted under.
				active, err := repos.LedgerRepo.HasLedgerEntries(ctx, account.AccountID)
				if err != nil {
					return err
				}
				if active {
					return fmt.Errorf("%w: code cannot change", apperrors.ErrHasActivity)
				}
				account.Code = code
			}
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
			}
			account.Name = name
		}
		if req.Description != nil {
			account.Description = *req.Description
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}

		reparented := false
		if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
			if err := s.reparent(ctx, repos, &account, *req.ParentAccountID); err != nil {
				return err
			}
			reparented = true
		}

		account.LastUpdatedAt = s.now().UTC()
		account.LastUpdatedBy = actor
		if err := repos.AccountRepo.UpdateAccount(ctx, account); err != nil {
			return err
		}

		if reparented {
			if err := relevelDescendants(ctx, repos, account, actor, account.LastUpdatedAt); err != nil {
				return err
			}
		}

		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrIntegrity) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", updated.AccountID))
	return &updated, nil
}

// reparent moves account under parentID, rejecting moves that would create a cycle.
// An empty parentID makes the account a root.
func (s *accountService) reparent(ctx context.Context, repos portsrepo.RepositoryProvider, account *domain.Account, parentID string) error {
	if parentID == "" {
		account.ParentAccountID = ""
		account.Level = 1
		return nil
	}

	parent, err := findParent(ctx, repos, parentID)
	if err != nil {
		return err
	}

	// Walk up from the new parent; reaching the account itself means a cycle.
	for cursor := parent; ; {
		if cursor.AccountID == account.AccountID {
			return fmt.Errorf("%w: account cannot be its own ancestor", apperrors.ErrValidation)
		}
		if cursor.ParentAccountID == "" {
			break
		}
		next, err := repos.AccountRepo.FindAccountByID(ctx, cursor.ParentAccountID)
		if err != nil {
			return fmt.Errorf("failed to walk account hierarchy: %w", err)
		}
		cursor = next
	}

	account.ParentAccountID = parent.AccountID
	account.Level = parent.Level + 1
	return nil
}

// relevelDescendants recomputes the level of every account below root.
func relevelDescendants(ctx context.Context, repos portsrepo.RepositoryProvider, root domain.Account, actor string, now time.Time) error {
	all, err := repos.AccountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return err
	}
	children := make(map[string][]domain.Account)
	for _, acc := range all {
		if acc.ParentAccountID != "" {
			children[acc.ParentAccountID] = append(children[acc.ParentAccountID], acc)
		}
	}

	queue := []domain.Account{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current.AccountID] {
			if child.Level != current.Level+1 {
				child.Level = current.Level + 1
				child.LastUpdatedAt = now
				child.LastUpdatedBy = actor
				if err := repos.AccountRepo.UpdateAccount(ctx, child); err != nil {
					return err
				}
			}
			queue = append(queue, child)
		}
	}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		locked, err := repos.AccountRepo.FindAccountsByIDsForUpdate(ctx, []string{accountID})
		if err != nil {
			return err
		}
		if _, ok := locked[accountID]; !ok {
			return apperrors.ErrNotFound
		}

		active, err := repos.LedgerRepo.HasLedgerEntries(ctx, accountID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.ErrHasActivity
		}
		// Draft lines are not in the ledger yet but still need the account to post.
		referenced, err := repos.JournalRepo.HasLinesForAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("%w: account is used by journal entries", apperrors.ErrHasActivity)
		}

		all, err := repos.AccountRepo.ListAccounts(ctx, domain.AccountFilter{})
		if err != nil {
			return err
		}
		for _, acc := range all {
			if acc.ParentAccountID == accountID {
				return apperrors.ErrHasChildren
			}
		}

		return repos.AccountRepo.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrIntegrity) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) ApplyPostings(ctx context.Context, repos portsrepo.RepositoryProvider, lines []domain.JournalLine, actor string) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	// Locks are always taken in id order.
	sort.Strings(ids)

	accounts, err := repos.AccountRepo.FindAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}

	now := s.now().UTC()
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, line.AccountID)
		}
		if err := accounting.ApplyToAccount(&acc, line.Debit, line.Credit); err != nil {
			return err
		}
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = actor
		accounts[line.AccountID] = acc
	}

	changed := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		changed = append(changed, accounts[id])
	}
	return repos.AccountRepo.UpdateAccountBalances(ctx, changed)
}

func ensureCodeAvailable(ctx context.Context, repos portsrepo.RepositoryProvider, code string, selfID string) error {
	existing, err := repos.AccountRepo.FindAccountByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if existing != nil && existing.AccountID != selfID {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, code)
	}
	return nil
}

func findParent(ctx context.Context, repos portsrepo.RepositoryProvider, parentID string) (*domain.Account, error) {
	parent, err := repos.AccountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent %s", apperrors.ErrUnknownAccount, parentID)
		}
		return nil, err
	}
	return parent, nil
}
