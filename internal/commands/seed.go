package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
)

// seedAccount is one account of the default chart. Parents precede their children.
type seedAccount struct {
	Code        string
	Name        string
	Type        domain.AccountType
	ParentCode  string
	Description string
}

// defaultChart returns a small-business chart of accounts.
func defaultChart() []seedAccount {
	return []seedAccount{
		{Code: "1000", Name: "Current Assets", Type: domain.Asset},
		{Code: "1010", Name: "Business Checking", Type: domain.Asset, ParentCode: "1000", Description: "Primary checking account"},
		{Code: "1020", Name: "Business Savings", Type: domain.Asset, ParentCode: "1000", Description: "Savings account"},
		{Code: "1100", Name: "Accounts Receivable", Type: domain.Asset, ParentCode: "1000"},
		{Code: "1500", Name: "Equipment", Type: domain.Asset},
		{Code: "1510", Name: "Accumulated Depreciation", Type: domain.Asset, ParentCode: "1500", Description: "Contra-asset, normally carries a credit balance"},
		{Code: "2000", Name: "Accounts Payable", Type: domain.Liability},
		{Code: "2010", Name: "Credit Card", Type: domain.Liability, Description: "Business credit card"},
		{Code: "3000", Name: "Owner's Equity", Type: domain.Equity},
		{Code: "3100", Name: "Retained Earnings", Type: domain.Equity},
		{Code: "4000", Name: "Service Revenue", Type: domain.Revenue},
		{Code: "4100", Name: "Product Revenue", Type: domain.Revenue},
		{Code: "5000", Name: "Operating Expenses", Type: domain.Expense},
		{Code: "5010", Name: "Rent", Type: domain.Expense, ParentCode: "5000"},
		{Code: "5020", Name: "Software & SaaS", Type: domain.Expense, ParentCode: "5000", Description: "Software subscriptions"},
		{Code: "5030", Name: "Office Supplies", Type: domain.Expense, ParentCode: "5000"},
		{Code: "5040", Name: "Professional Services", Type: domain.Expense, ParentCode: "5000", Description: "Legal, accounting, consulting"},
		{Code: "5500", Name: "Depreciation Expense", Type: domain.Expense},
	}
}

func newSeedCommand() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default chart of accounts",
		Long:  "Creates the default chart of accounts. Accounts whose code already exists are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger()
			if cfg.StorageDriver == config.StorageMemory {
				logger.Warn("Seeding in-memory storage has no lasting effect.")
			}

			store, err := openStore(cmd.Context(), cfg, logger, true)
			if err != nil {
				return err
			}
			defer store.Close()

			created, err := seedChart(cmd.Context(), services.NewAccountService(store), defaultChart(), actor, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d accounts.\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "system", "user recorded as creator")

	return cmd
}

// seedChart creates every account of chart that does not exist yet and returns how many
// were created.
func seedChart(ctx context.Context, accounts portssvc.AccountSvcFacade, chart []seedAccount, actor string, logger *slog.Logger) (int, error) {
	existing, err := accounts.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return 0, fmt.Errorf("listing accounts: %w", err)
	}
	idByCode := make(map[string]string, len(existing)+len(chart))
	for _, acc := range existing {
		idByCode[acc.Code] = acc.AccountID
	}

	created := 0
	for _, sa := range chart {
		if _, ok := idByCode[sa.Code]; ok {
			logger.Debug("Account already exists, skipping", slog.String("code", sa.Code))
			continue
		}
		req := dto.CreateAccountRequest{
			Code:        sa.Code,
			Name:        sa.Name,
			AccountType: sa.Type,
			Description: sa.Description,
		}
		if sa.ParentCode != "" {
			parentID, ok := idByCode[sa.ParentCode]
			if !ok {
				return created, fmt.Errorf("%w: parent %s of %s is not in the chart", apperrors.ErrUnknownAccount, sa.ParentCode, sa.Code)
			}
			req.ParentAccountID = &parentID
		}

		acc, err := accounts.CreateAccount(ctx, req, actor)
		if errors.Is(err, apperrors.ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("creating account %s: %w", sa.Code, err)
		}
		idByCode[acc.Code] = acc.AccountID
		created++
	}

	logger.Info("Chart of accounts seeded", slog.Int("created", created))
	return created, nil
}
