package analytics

import (
	"time"

	"github.com/techcorp/internal-tools/internal/core/common/validation"
)

const (
	MinYear = 2020
	MaxYear = 2100

	DefaultExpensiveLimit = 10
	MaxExpensiveLimit     = 100

	DefaultUsageThreshold = 5
	MaxUsageThreshold     = 100
)

// PeriodQuery selects a calendar month. Both fields are required.
type PeriodQuery struct {
	Year  *int
	Month *int
}

func (q PeriodQuery) validate(v *validation.ValidationBuilder) {
	v.Field("year", q.Year).Required().Between(MinYear, MaxYear)
	v.Field("month", q.Month).Required().Between(1, 12)
}

// Bounds returns the half-open UTC interval [first day, first day of next month).
func (q PeriodQuery) Bounds() (time.Time, time.Time) {
	from := time.Date(*q.Year, time.Month(*q.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (q PeriodQuery) Validate() error {
	v := validation.NewValidator()
	q.validate(v)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type ExpensiveToolsQuery struct {
	Limit *int
}

func (q ExpensiveToolsQuery) Validate() error {
	v := validation.NewValidator()
	v.Field("limit", q.Limit).Between(1, MaxExpensiveLimit)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (q ExpensiveToolsQuery) LimitOrDefault() int {
	if q.Limit == nil {
		return DefaultExpensiveLimit
	}
	return *q.Limit
}

type LowUsageQuery struct {
	PeriodQuery
	Threshold *int
}

func (q LowUsageQuery) Validate() error {
	v := validation.NewValidator()
	q.PeriodQuery.validate(v)
	v.Field("threshold", q.Threshold).Between(0, MaxUsageThreshold)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (q LowUsageQuery) ThresholdOrDefault() int {
	if q.Threshold == nil {
		return DefaultUsageThreshold
	}
	return *q.Threshold
}
