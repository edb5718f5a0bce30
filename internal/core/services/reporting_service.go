package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	store portsrepo.Store
	now   func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the time source used for GeneratedAt.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(store portsrepo.Store, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		store: store,
		now:   time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

type accountTotals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// totalsByAccount sums ledger rows in the given window per account and loads those accounts.
func (s *reportingService) totalsByAccount(ctx context.Context, from, to *time.Time) (map[string]*accountTotals, map[string]domain.Account, error) {
	repos := s.store.Repositories()

	rows, err := repos.LedgerRepo.ListLedgerEntries(ctx, domain.LedgerFilter{FromDate: from, ToDate: to})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	totals := make(map[string]*accountTotals)
	ids := make([]string, 0)
	for _, row := range rows {
		t, ok := totals[row.AccountID]
		if !ok {
			t = &accountTotals{debit: decimal.Zero, credit: decimal.Zero}
			totals[row.AccountID] = t
			ids = append(ids, row.AccountID)
		}
		t.debit = t.debit.Add(row.Debit)
		t.credit = t.credit.Add(row.Credit)
	}

	accounts, err := repos.AccountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return totals, accounts, nil
}

// GenerateTrialBalance generates a trial balance report as of a specific date
func (s *reportingService) GenerateTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	cutoff := domain.DateOnly(asOf)

	totals, accounts, err := s.totalsByAccount(ctx, nil, &cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", cutoff.Format(time.DateOnly)))
		return nil, err
	}

	report := &domain.TrialBalance{
		AsOfDate:     cutoff,
		Entries:      make([]domain.TrialBalanceEntry, 0, len(totals)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		GeneratedAt:  s.now().UTC(),
	}

	for id, t := range totals {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: ledger references missing account %s", apperrors.ErrIntegrity, id)
		}
		net := t.debit.Sub(t.credit)
		debitBalance, creditBalance := accounting.SplitNet(net)
		report.Entries = append(report.Entries, domain.TrialBalanceEntry{
			AccountID:     acc.AccountID,
			AccountCode:   acc.Code,
			AccountName:   acc.Name,
			AccountType:   acc.AccountType,
			DebitBalance:  debitBalance,
			CreditBalance: creditBalance,
			NetBalance:    net,
		})
		report.TotalDebits = report.TotalDebits.Add(debitBalance)
		report.TotalCredits = report.TotalCredits.Add(creditBalance)
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].AccountCode < report.Entries[j].AccountCode
	})
	report.IsBalanced = accounting.TotalsAgree(report.TotalDebits, report.TotalCredits)

	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("asOf", cutoff.Format(time.DateOnly)),
			slog.String("total_debits", report.TotalDebits.String()),
			slog.String("total_credits", report.TotalCredits.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", cutoff.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Entries)))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	fromDate := domain.DateOnly(from)
	toDate := domain.DateOnly(to)
	if fromDate.After(toDate) {
		return nil, fmt.Errorf("%w: fromDate must be before or equal to toDate", apperrors.ErrValidation)
	}

	totals, accounts, err := s.totalsByAccount(ctx, &fromDate, &toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("from", fromDate.Format(time.DateOnly)),
			slog.String("to", toDate.Format(time.DateOnly)))
		return nil, err
	}

	report := &domain.PAndLReport{
		FromDate:  fromDate,
		ToDate:    toDate,
		Revenue:   []domain.AccountAmount{},
		Expenses:  []domain.AccountAmount{},
		NetProfit: decimal.Zero,
	}

	totalRevenue := decimal.Zero
	totalExpenses := decimal.Zero
	for id, t := range totals {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: ledger references missing account %s", apperrors.ErrIntegrity, id)
		}
		if acc.AccountType != domain.Revenue && acc.AccountType != domain.Expense {
			continue
		}
		amount, err := accounting.CalculateSignedAmount(t.debit, t.credit, acc.AccountType)
		if err != nil {
			return nil, err
		}
		line := domain.AccountAmount{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, NetAmount: amount}
		if acc.AccountType == domain.Revenue {
			report.Revenue = append(report.Revenue, line)
			totalRevenue = totalRevenue.Add(amount)
		} else {
			report.Expenses = append(report.Expenses, line)
			totalExpenses = totalExpenses.Add(amount)
		}
	}

	byCode := func(items []domain.AccountAmount) func(i, j int) bool {
		return func(i, j int) bool { return items[i].Code < items[j].Code }
	}
	sort.Slice(report.Revenue, byCode(report.Revenue))
	sort.Slice(report.Expenses, byCode(report.Expenses))
	report.NetProfit = totalRevenue.Sub(totalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("from", fromDate.Format(time.DateOnly)),
		slog.String("to", toDate.Format(time.DateOnly)),
		slog.Int("revenue_count", len(report.Revenue)),
		slog.Int("expense_count", len(report.Expenses)))
	return report, nil
}
