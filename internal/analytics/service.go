package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/techcorp/internal-tools/internal"
)

// RepositoryAPI runs the aggregate queries. Every method considers active
// tools only.
type RepositoryAPI interface {
	DepartmentCosts(ctx context.Context) ([]DepartmentCost, error)
	ExpensiveTools(ctx context.Context, limit int) ([]ExpensiveTool, error)
	ToolsByCategory(ctx context.Context) ([]CategorySummary, error)
	LowUsageTools(ctx context.Context, from, to time.Time, threshold int) ([]LowUsageTool, error)
	VendorSummary(ctx context.Context) ([]VendorSummary, error)
}

// Service validates report parameters before any query runs and derives the
// computed columns.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// DepartmentCosts validates the period but aggregates all active tools
// regardless of it.
func (s *Service) DepartmentCosts(ctx context.Context, period PeriodQuery) ([]DepartmentCost, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("department costs requested; period does not filter the aggregation",
		"year", *period.Year, "month", *period.Month)

	rows, err := s.repo.DepartmentCosts(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate department costs", "error", err)
		return nil, internal.NewInternalError("failed to compute department costs", err)
	}
	return nonNil(rows), nil
}

func (s *Service) ExpensiveTools(ctx context.Context, query ExpensiveToolsQuery) ([]ExpensiveTool, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.ExpensiveTools(ctx, query.LimitOrDefault())
	if err != nil {
		s.logger.Error("failed to query expensive tools", "error", err)
		return nil, internal.NewInternalError("failed to compute expensive tools", err)
	}
	return nonNil(rows), nil
}

func (s *Service) ToolsByCategory(ctx context.Context) ([]CategorySummary, error) {
	rows, err := s.repo.ToolsByCategory(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate tools by category", "error", err)
		return nil, internal.NewInternalError("failed to compute tools by category", err)
	}
	return nonNil(rows), nil
}

func (s *Service) LowUsageTools(ctx context.Context, query LowUsageQuery) ([]LowUsageTool, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from, to := query.Bounds()
	rows, err := s.repo.LowUsageTools(ctx, from, to, query.ThresholdOrDefault())
	if err != nil {
		s.logger.Error("failed to query low usage tools", "error", err)
		return nil, internal.NewInternalError("failed to compute low usage tools", err)
	}

	for i := range rows {
		if rows[i].UsageCount > 0 {
			perUsage := rows[i].MonthlyCost.DivInt(rows[i].UsageCount)
			rows[i].CostPerUsage = &perUsage
		} else {
			rows[i].CostPerUsage = nil
		}
	}
	return nonNil(rows), nil
}

func (s *Service) VendorSummary(ctx context.Context) ([]VendorSummary, error) {
	rows, err := s.repo.VendorSummary(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate vendor summary", "error", err)
		return nil, internal.NewInternalError("failed to compute vendor summary", err)
	}

	for i := range rows {
		rows[i].AverageCostPerTool = rows[i].TotalMonthlyCost.DivInt(rows[i].ToolCount)
	}
	return nonNil(rows), nil
}

// nonNil keeps empty reports serialising as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
