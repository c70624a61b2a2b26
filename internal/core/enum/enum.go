// Package enum holds the closed value sets stored in the tools schema.
// Every type parses from its wire form and refuses anything outside the set.
package enum

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
	DepartmentDesign      Department = "Design"
)

func Departments() []Department {
	return []Department{
		DepartmentEngineering,
		DepartmentSales,
		DepartmentMarketing,
		DepartmentHR,
		DepartmentFinance,
		DepartmentOperations,
		DepartmentDesign,
	}
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentEngineering, DepartmentSales, DepartmentMarketing, DepartmentHR,
		DepartmentFinance, DepartmentOperations, DepartmentDesign:
		return true
	}
	return false
}

// ParseDepartment matches department names exactly; they are proper nouns on the wire.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown department %q", s)
	}
	return d, nil
}

func (d Department) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *Department) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	*d = Department(s)
	return nil
}

type ToolStatus string

const (
	ToolStatusActive     ToolStatus = "active"
	ToolStatusDeprecated ToolStatus = "deprecated"
	ToolStatusTrial      ToolStatus = "trial"
)

func ToolStatuses() []ToolStatus {
	return []ToolStatus{ToolStatusActive, ToolStatusDeprecated, ToolStatusTrial}
}

func (s ToolStatus) Valid() bool {
	switch s {
	case ToolStatusActive, ToolStatusDeprecated, ToolStatusTrial:
		return true
	}
	return false
}

// ParseToolStatus is case-insensitive, matching how the list filter is specified.
func ParseToolStatus(s string) (ToolStatus, error) {
	st := ToolStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown tool status %q", s)
	}
	return st, nil
}

func (s ToolStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ToolStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*s = ToolStatus(v)
	return nil
}

type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleEmployee, UserRoleManager, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*r = UserRole(v)
	return nil
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	}
	return false
}

func (s UserStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *UserStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*s = UserStatus(v)
	return nil
}

type AccessStatus string

const (
	AccessStatusActive  AccessStatus = "active"
	AccessStatusRevoked AccessStatus = "revoked"
)

func (s AccessStatus) Valid() bool {
	switch s {
	case AccessStatusActive, AccessStatusRevoked:
		return true
	}
	return false
}

func (s AccessStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AccessStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*s = AccessStatus(v)
	return nil
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether the request has been processed.
func (s RequestStatus) IsFinal() bool {
	switch s {
	case RequestStatusApproved, RequestStatusRejected:
		return true
	case RequestStatusPending:
		return false
	}
	return false
}

func (s RequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *RequestStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*s = RequestStatus(v)
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", src)
	}
}
