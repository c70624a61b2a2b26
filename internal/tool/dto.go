package tool

import (
	"strings"
	"time"

	"github.com/techcorp/internal-tools/internal"
	"github.com/techcorp/internal-tools/internal/core/common/validation"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	"github.com/techcorp/internal-tools/internal/core/enum"
	"github.com/techcorp/internal-tools/internal/core/money"
)

const (
	NameMinLength   = 2
	NameMaxLength   = 100
	VendorMaxLength = 100
	URLMaxLength    = 255
	CostPrecision   = 10

	DefaultListLimit = 100
	MaxListLimit     = 500
)

// CreateToolDTO represents the request payload for creating a tool
type CreateToolDTO struct {
	Name             string       `json:"name"`
	Description      *string      `json:"description,omitempty"`
	Vendor           string       `json:"vendor"`
	WebsiteURL       *string      `json:"website_url,omitempty"`
	CategoryID       *int64       `json:"category_id"`
	MonthlyCost      *money.Money `json:"monthly_cost"`
	OwnerDepartment  string       `json:"owner_department"`
	Status           *string      `json:"status,omitempty"`
	ActiveUsersCount *int         `json:"active_users_count,omitempty"`
}

func (dto CreateToolDTO) Validate() error {
	v := validation.NewValidator()
	// Lengths apply to the trimmed values that get stored.
	v.Field("name", strings.TrimSpace(dto.Name)).Required().MinLength(NameMinLength).MaxLength(NameMaxLength)
	v.Field("vendor", strings.TrimSpace(dto.Vendor)).Required().MaxLength(VendorMaxLength)
	if dto.WebsiteURL != nil {
		v.Field("website_url", *dto.WebsiteURL).URL().MaxLength(URLMaxLength)
	}
	v.Field("category_id", dto.CategoryID).Required().MinInt(1, internal.ErrCodeOutOfRange)
	v.Field("monthly_cost", dto.MonthlyCost).Required().Amount(CostPrecision)
	v.Field("owner_department", dto.OwnerDepartment).Required().OneOf(departmentNames()...)
	if dto.Status != nil {
		v.Field("status", *dto.Status).OneOf(toolStatusNames()...)
	}
	v.Field("active_users_count", dto.ActiveUsersCount).MinInt(0, internal.ErrCodeOutOfRange)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ToDataModel assumes Validate has passed.
func (dto CreateToolDTO) ToDataModel(now time.Time) *toolDatamodel.Tool {
	t := &toolDatamodel.Tool{
		Name:            strings.TrimSpace(dto.Name),
		Description:     dto.Description,
		Vendor:          strings.TrimSpace(dto.Vendor),
		WebsiteURL:      dto.WebsiteURL,
		CategoryID:      *dto.CategoryID,
		MonthlyCost:     *dto.MonthlyCost,
		OwnerDepartment: enum.Department(dto.OwnerDepartment),
		Status:          enum.ToolStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if dto.Status != nil {
		t.Status = enum.ToolStatus(*dto.Status)
	}
	if dto.ActiveUsersCount != nil {
		t.ActiveUsersCount = *dto.ActiveUsersCount
	}
	return t
}

// UpdateToolDTO is a partial update: nil fields are left untouched.
type UpdateToolDTO struct {
	Name             *string      `json:"name,omitempty"`
	Description      *string      `json:"description,omitempty"`
	Vendor           *string      `json:"vendor,omitempty"`
	WebsiteURL       *string      `json:"website_url,omitempty"`
	CategoryID       *int64       `json:"category_id,omitempty"`
	MonthlyCost      *money.Money `json:"monthly_cost,omitempty"`
	OwnerDepartment  *string      `json:"owner_department,omitempty"`
	Status           *string      `json:"status,omitempty"`
	ActiveUsersCount *int         `json:"active_users_count,omitempty"`
}

func (dto UpdateToolDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", strings.TrimSpace(*dto.Name)).Required().MinLength(NameMinLength).MaxLength(NameMaxLength)
	}
	if dto.Vendor != nil {
		v.Field("vendor", strings.TrimSpace(*dto.Vendor)).Required().MaxLength(VendorMaxLength)
	}
	if dto.WebsiteURL != nil {
		v.Field("website_url", *dto.WebsiteURL).URL().MaxLength(URLMaxLength)
	}
	v.Field("category_id", dto.CategoryID).MinInt(1, internal.ErrCodeOutOfRange)
	v.Field("monthly_cost", dto.MonthlyCost).Amount(CostPrecision)
	if dto.OwnerDepartment != nil {
		v.Field("owner_department", *dto.OwnerDepartment).OneOf(departmentNames()...)
	}
	if dto.Status != nil {
		v.Field("status", *dto.Status).OneOf(toolStatusNames()...)
	}
	v.Field("active_users_count", dto.ActiveUsersCount).MinInt(0, internal.ErrCodeOutOfRange)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Changes maps the supplied fields to their column names.
func (dto UpdateToolDTO) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if dto.Name != nil {
		changes["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		changes["description"] = *dto.Description
	}
	if dto.Vendor != nil {
		changes["vendor"] = strings.TrimSpace(*dto.Vendor)
	}
	if dto.WebsiteURL != nil {
		changes["website_url"] = *dto.WebsiteURL
	}
	if dto.CategoryID != nil {
		changes["category_id"] = *dto.CategoryID
	}
	if dto.MonthlyCost != nil {
		changes["monthly_cost"] = *dto.MonthlyCost
	}
	if dto.OwnerDepartment != nil {
		changes["owner_department"] = enum.Department(*dto.OwnerDepartment)
	}
	if dto.Status != nil {
		changes["status"] = enum.ToolStatus(*dto.Status)
	}
	if dto.ActiveUsersCount != nil {
		changes["active_users_count"] = *dto.ActiveUsersCount
	}
	return changes
}

// ListToolsQuery holds the raw list parameters as received.
type ListToolsQuery struct {
	CategoryID *int
	Status     *string
	Vendor     *string
	Search     *string
	Skip       *int
	Limit      *int
}

// ListFilter is a validated ListToolsQuery.
type ListFilter struct {
	CategoryID *int64
	Status     *enum.ToolStatus
	Vendor     string
	Search     string
	Skip       int
	Limit      int
}

func (q ListToolsQuery) ToFilter() (ListFilter, error) {
	v := validation.NewValidator()
	v.Field("skip", q.Skip).MinInt(0, internal.ErrCodeOutOfRange)
	v.Field("limit", q.Limit).Between(1, MaxListLimit)

	filter := ListFilter{Skip: 0, Limit: DefaultListLimit}
	if q.Status != nil {
		status, err := enum.ParseToolStatus(*q.Status)
		if err != nil {
			v.Field("status", *q.Status).OneOf(toolStatusNames()...)
		} else {
			filter.Status = &status
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return ListFilter{}, appErr
	}

	if q.CategoryID != nil {
		id := int64(*q.CategoryID)
		filter.CategoryID = &id
	}
	if q.Vendor != nil {
		filter.Vendor = *q.Vendor
	}
	if q.Search != nil {
		filter.Search = *q.Search
	}
	if q.Skip != nil {
		filter.Skip = *q.Skip
	}
	if q.Limit != nil {
		filter.Limit = *q.Limit
	}
	return filter, nil
}

func departmentNames() []string {
	departments := enum.Departments()
	names := make([]string, len(departments))
	for i, d := range departments {
		names[i] = string(d)
	}
	return names
}

func toolStatusNames() []string {
	statuses := enum.ToolStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}
