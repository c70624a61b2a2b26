package usage

import (
	"time"

	"github.com/techcorp/internal-tools/internal/core/money"
)

// UsageLog is one user's activity on one tool for one day.
type UsageLog struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null"`
	ToolID       int64     `gorm:"column:tool_id;not null;index:idx_usage_date_tool,priority:2"`
	SessionDate  time.Time `gorm:"column:session_date;type:date;not null;index:idx_usage_date_tool,priority:1"`
	UsageMinutes int       `gorm:"column:usage_minutes;default:0"`
	ActionsCount int       `gorm:"column:actions_count;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}

// CostTracking is a monthly cost snapshot, unique per tool and month.
type CostTracking struct {
	ID               int64       `gorm:"primaryKey"`
	ToolID           int64       `gorm:"column:tool_id;not null;uniqueIndex:uq_tool_month,priority:1"`
	MonthYear        time.Time   `gorm:"column:month_year;type:date;not null;uniqueIndex:uq_tool_month,priority:2"`
	TotalMonthlyCost money.Money `gorm:"column:total_monthly_cost;not null"`
	ActiveUsersCount int         `gorm:"column:active_users_count;not null;default:0"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (CostTracking) TableName() string {
	return "cost_tracking"
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
