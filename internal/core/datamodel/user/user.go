package user

import (
	"time"

	"github.com/techcorp/internal-tools/internal/core/enum"
)

type User struct {
	ID         int64           `gorm:"primaryKey"`
	Name       string          `gorm:"column:name;size:100;not null"`
	Email      string          `gorm:"column:email;size:150;uniqueIndex;not null"`
	Department enum.Department `gorm:"column:department;size:20;not null;index:idx_users_department"`
	Role       enum.UserRole   `gorm:"column:role;size:20;default:employee"`
	Status     enum.UserStatus `gorm:"column:status;size:20;default:active;index:idx_users_status"`
	HireDate   *time.Time      `gorm:"column:hire_date;type:date"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// UserToolAccess grants a user access to a tool. Only one active grant may
// exist per (user, tool) pair.
type UserToolAccess struct {
	ID        int64             `gorm:"primaryKey"`
	UserID    int64             `gorm:"column:user_id;not null;index:idx_access_user"`
	ToolID    int64             `gorm:"column:tool_id;not null;index:idx_access_tool"`
	GrantedAt time.Time         `gorm:"column:granted_at;not null"`
	GrantedBy int64             `gorm:"column:granted_by;not null"`
	RevokedAt *time.Time        `gorm:"column:revoked_at"`
	RevokedBy *int64            `gorm:"column:revoked_by"`
	Status    enum.AccessStatus `gorm:"column:status;size:20;default:active;index:idx_access_status"`
}

func (UserToolAccess) TableName() string {
	return "user_tool_access"
}

// Revoke closes the grant. The revoke time never precedes the grant time.
func (a *UserToolAccess) Revoke(by int64, at time.Time) {
	if at.Before(a.GrantedAt) {
		at = a.GrantedAt
	}
	a.Status = enum.AccessStatusRevoked
	a.RevokedAt = &at
	a.RevokedBy = &by
}

type AccessRequest struct {
	ID                    int64              `gorm:"primaryKey"`
	UserID                int64              `gorm:"column:user_id;not null;index:idx_requests_user"`
	ToolID                int64              `gorm:"column:tool_id;not null"`
	BusinessJustification string             `gorm:"column:business_justification;not null"`
	Status                enum.RequestStatus `gorm:"column:status;size:20;default:pending;index:idx_requests_status"`
	RequestedAt           time.Time          `gorm:"column:requested_at;not null"`
	ProcessedAt           *time.Time         `gorm:"column:processed_at"`
	ProcessedBy           *int64             `gorm:"column:processed_by"`
	ProcessingNotes       *string            `gorm:"column:processing_notes"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}

// Process records the decision on a pending request.
func (r *AccessRequest) Process(status enum.RequestStatus, by int64, at time.Time, notes string) {
	if at.Before(r.RequestedAt) {
		at = r.RequestedAt
	}
	r.Status = status
	r.ProcessedAt = &at
	r.ProcessedBy = &by
	if notes != "" {
		r.ProcessingNotes = &notes
	}
}
