package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/analytics"
	"github.com/techcorp/internal-tools/internal/core/enum"
)

// activeTool restricts a query over "tools t" to active tools.
var activeTool = sq.Eq{"t.status": string(enum.ToolStatusActive)}

// AnalyticsRepository builds the report queries with squirrel and runs them
// through sqlx. Placeholders are rebound for the connection's driver and
// every query is bounded by timeout.
type AnalyticsRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewAnalyticsRepository(db *sqlx.DB, timeout time.Duration) analytics.RepositoryAPI {
	return &AnalyticsRepository{db: db, timeout: timeout}
}

func (r *AnalyticsRepository) selectAll(ctx context.Context, dest interface{}, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	ctx, cancel := internal.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.db.SelectContext(ctx, dest, r.db.Rebind(sqlStr), args...); err != nil {
		return fmt.Errorf("run query: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) DepartmentCosts(ctx context.Context) ([]analytics.DepartmentCost, error) {
	query := sq.Select(
		"t.owner_department AS department",
		"COALESCE(SUM(t.monthly_cost), 0) AS total_cost",
		"COUNT(t.id) AS tool_count",
	).
		From("tools t").
		Where(activeTool).
		GroupBy("t.owner_department").
		OrderBy("total_cost DESC", "department ASC")

	var rows []analytics.DepartmentCost
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("department costs: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepository) ExpensiveTools(ctx context.Context, limit int) ([]analytics.ExpensiveTool, error) {
	query := sq.Select(
		"t.id",
		"t.name",
		"t.vendor",
		"t.monthly_cost",
		"t.active_users_count",
		"c.name AS category_name",
	).
		From("tools t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(activeTool).
		OrderBy("t.monthly_cost DESC", "t.id ASC").
		Limit(uint64(limit))

	var rows []analytics.ExpensiveTool
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("expensive tools: %w", err)
	}
	return rows, nil
}

// ToolsByCategory keeps the status predicate in the join so categories
// without active tools still appear with zero totals.
func (r *AnalyticsRepository) ToolsByCategory(ctx context.Context) ([]analytics.CategorySummary, error) {
	query := sq.Select(
		"c.id AS category_id",
		"c.name AS category_name",
		"COUNT(t.id) AS tool_count",
		"COALESCE(SUM(t.monthly_cost), 0) AS total_monthly_cost",
	).
		From("categories c").
		LeftJoin("tools t ON t.category_id = c.id AND t.status = ?", string(enum.ToolStatusActive)).
		GroupBy("c.id", "c.name").
		OrderBy("total_monthly_cost DESC", "c.name ASC")

	var rows []analytics.CategorySummary
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("tools by category: %w", err)
	}
	return rows, nil
}

// LowUsageTools counts usage rows in [from, to) per tool; tools without rows
// count as zero.
func (r *AnalyticsRepository) LowUsageTools(ctx context.Context, from, to time.Time, threshold int) ([]analytics.LowUsageTool, error) {
	usageSQL, usageArgs, err := sq.Select("u.tool_id", "COUNT(u.id) AS usage_count").
		From("usage_logs u").
		Where(sq.GtOrEq{"u.session_date": from}).
		Where(sq.Lt{"u.session_date": to}).
		GroupBy("u.tool_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("low usage tools: build usage subquery: %w", err)
	}

	query := sq.Select(
		"t.id",
		"t.name",
		"t.vendor",
		"t.monthly_cost",
		"t.active_users_count",
		"COALESCE(uc.usage_count, 0) AS usage_count",
	).
		From("tools t").
		LeftJoin("("+usageSQL+") uc ON uc.tool_id = t.id", usageArgs...).
		Where(activeTool).
		Where("COALESCE(uc.usage_count, 0) <= ?", threshold).
		OrderBy("t.monthly_cost DESC", "t.id ASC")

	var rows []analytics.LowUsageTool
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("low usage tools: %w", err)
	}
	return rows, nil
}

func (r *AnalyticsRepository) VendorSummary(ctx context.Context) ([]analytics.VendorSummary, error) {
	query := sq.Select(
		"t.vendor",
		"COUNT(t.id) AS tool_count",
		"COALESCE(SUM(t.monthly_cost), 0) AS total_monthly_cost",
		"COALESCE(SUM(t.active_users_count), 0) AS total_users",
	).
		From("tools t").
		Where(activeTool).
		GroupBy("t.vendor").
		OrderBy("total_monthly_cost DESC", "t.vendor ASC")

	var rows []analytics.VendorSummary
	if err := r.selectAll(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("vendor summary: %w", err)
	}
	return rows, nil
}
