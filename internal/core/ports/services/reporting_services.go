package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GenerateTrialBalance generates a trial balance report as of a specific date
	GenerateTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)
}
