package tool

import (
	"time"

	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
)

type Tool struct {
	ID               int64           `gorm:"primaryKey"`
	Name             string          `gorm:"column:name;size:100;not null"`
	Description      *string         `gorm:"column:description"`
	Vendor           string          `gorm:"column:vendor;size:100;not null"`
	WebsiteURL       *string         `gorm:"column:website_url;size:255"`
	CategoryID       int64           `gorm:"column:category_id;not null;index:idx_tools_category"`
	MonthlyCost      money.Money     `gorm:"column:monthly_cost;not null;check:chk_positive_cost,monthly_cost >= 0"`
	ActiveUsersCount int             `gorm:"column:active_users_count;not null;default:0;check:chk_positive_users,active_users_count >= 0"`
	OwnerDepartment  enum.Department `gorm:"column:owner_department;size:20;not null;index:idx_tools_department"`
	Status           enum.ToolStatus `gorm:"column:status;size:20;default:active;index:idx_tools_status"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tool) TableName() string {
	return "tools"
}

// ToolWithCategory is a tool row joined with its category's name.
type ToolWithCategory struct {
	Tool
	CategoryName *string `gorm:"column:category_name"`
}
