// Package analytics computes the cost and usage reports over active tools.
package analytics

import (
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
)

type DepartmentCost struct {
	Department enum.Department `db:"department" json:"department"`
	TotalCost  money.Money     `db:"total_cost" json:"total_cost"`
	ToolCount  int64           `db:"tool_count" json:"tool_count"`
}

type ExpensiveTool struct {
	ID               int64       `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Vendor           string      `db:"vendor" json:"vendor"`
	MonthlyCost      money.Money `db:"monthly_cost" json:"monthly_cost"`
	ActiveUsersCount int64       `db:"active_users_count" json:"active_users_count"`
	CategoryName     *string     `db:"category_name" json:"category_name"`
}

type CategorySummary struct {
	CategoryID       int64       `db:"category_id" json:"category_id"`
	CategoryName     string      `db:"category_name" json:"category_name"`
	ToolCount        int64       `db:"tool_count" json:"tool_count"`
	TotalMonthlyCost money.Money `db:"total_monthly_cost" json:"total_monthly_cost"`
}

type LowUsageTool struct {
	ID               int64       `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Vendor           string      `db:"vendor" json:"vendor"`
	MonthlyCost      money.Money `db:"monthly_cost" json:"monthly_cost"`
	ActiveUsersCount int64       `db:"active_users_count" json:"active_users_count"`
	UsageCount       int64       `db:"usage_count" json:"usage_count"`
	// CostPerUsage is nil when the tool has no usage in the period.
	CostPerUsage *money.Money `db:"-" json:"cost_per_usage"`
}

type VendorSummary struct {
	Vendor             string      `db:"vendor" json:"vendor"`
	ToolCount          int64       `db:"tool_count" json:"tool_count"`
	TotalMonthlyCost   money.Money `db:"total_monthly_cost" json:"total_monthly_cost"`
	TotalUsers         int64       `db:"total_users" json:"total_users"`
	AverageCostPerTool money.Money `db:"-" json:"average_cost_per_tool"`
}
