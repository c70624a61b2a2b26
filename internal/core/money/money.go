// Package money implements the fixed-point amounts used for tool costs.
// Values are kept at two fraction digits and serialise as bare JSON numbers.
package money

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

const Scale = 2

type Money struct {
	decimal.Decimal
}

var Zero = Money{Decimal: decimal.Zero}

func New(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(Scale)}
}

func FromCents(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -Scale)}
}

// Parse keeps the input's precision so callers can reject more than two fraction digits.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

// DivInt divides and rounds half away from zero to two digits. Division by zero yields Zero.
func (m Money) DivInt(n int64) Money {
	if n == 0 {
		return Zero
	}
	return New(m.Decimal.Div(decimal.NewFromInt(n)))
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// HasScale reports whether the amount needs no more than two fraction digits.
func (m Money) HasScale() bool {
	return m.Decimal.Equal(m.Decimal.Round(Scale))
}

// FitsPrecision reports whether the amount fits NUMERIC(precision, 2).
func (m Money) FitsPrecision(precision int32) bool {
	limit := decimal.New(1, precision-Scale)
	return m.Decimal.Abs().LessThan(limit)
}

func (m Money) String() string {
	return m.Decimal.StringFixed(Scale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(Scale)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" || len(data) == 0 {
		return fmt.Errorf("amount must be a number")
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", string(data), err)
	}
	m.Decimal = d
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.StringFixed(Scale), nil
}

// Scan accepts the representations drivers return for NUMERIC and aggregate columns.
func (m *Money) Scan(src interface{}) error {
	var d decimal.Decimal
	switch v := src.(type) {
	case nil:
		d = decimal.Zero
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int64:
		d = decimal.NewFromInt(v)
	case []byte:
		parsed, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		d = parsed
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
	m.Decimal = d.Round(Scale)
	return nil
}

// GormDataType lets AutoMigrate create a NUMERIC column on any dialect.
func (Money) GormDataType() string {
	return "numeric(10,2)"
}
