package tool

import (
	"time"

	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
)

// Tool is the API view of a tracked tool, carrying its category name.
type Tool struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      *string         `json:"description"`
	Vendor           string          `json:"vendor"`
	WebsiteURL       *string         `json:"website_url"`
	CategoryID       int64           `json:"category_id"`
	Category         *string         `json:"category"`
	MonthlyCost      money.Money     `json:"monthly_cost"`
	ActiveUsersCount int             `json:"active_users_count"`
	OwnerDepartment  enum.Department `json:"owner_department"`
	Status           enum.ToolStatus `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func FromDataModel(row *toolDatamodel.ToolWithCategory) *Tool {
	return &Tool{
		ID:               row.ID,
		Name:             row.Name,
		Description:      row.Description,
		Vendor:           row.Vendor,
		WebsiteURL:       row.WebsiteURL,
		CategoryID:       row.CategoryID,
		Category:         row.CategoryName,
		MonthlyCost:      row.MonthlyCost,
		ActiveUsersCount: row.ActiveUsersCount,
		OwnerDepartment:  row.OwnerDepartment,
		Status:           row.Status,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func FromDataModels(rows []*toolDatamodel.ToolWithCategory) []*Tool {
	tools := make([]*Tool, 0, len(rows))
	for _, row := range rows {
		tools = append(tools, FromDataModel(row))
	}
	return tools
}
