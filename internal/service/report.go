package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finledger/finledger/internal/core"
	"github.com/finledger/finledger/internal/domain/model"
	apperrors "github.com/finledger/finledger/internal/errors"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Transactions core.TransactionRepository
}

// ReportService computes read-only aggregates over an owner's transactions.
type ReportService struct {
	transactions core.TransactionRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) *ReportService {
	return &ReportService{transactions: opts.Transactions}
}

// MonthlySummary totals the owner's transactions for one calendar month,
// grouped by kind and by category. The two aggregate queries run
// concurrently.
func (s *ReportService) MonthlySummary(
	ctx context.Context,
	ownerID string,
	year, month int,
) (*model.MonthlySummary, error) {
	if year < 1970 || year > 9999 {
		return nil, apperrors.Validation("year must be between 1970 and 9999")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.Validation("month must be between 1 and 12")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	period := core.Period{From: from, To: from.AddDate(0, 1, 0)}

	summary := &model.MonthlySummary{Year: year, Month: month}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byKind, err := s.transactions.SumByKind(gctx, ownerID, period)
		if err != nil {
			return err
		}
		summary.ByKind = byKind
		return nil
	})
	g.Go(func() error {
		byCategory, err := s.transactions.SumByCategory(gctx, ownerID, period)
		if err != nil {
			return err
		}
		summary.ByCategory = byCategory
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summary.ByKind == nil {
		summary.ByKind = []model.KindTotal{}
	}
	if summary.ByCategory == nil {
		summary.ByCategory = []model.CategoryTotal{}
	}
	return summary, nil
}
