package category

import "time"

const DefaultColorHex = "#6366f1"

type Category struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;size:50;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	ColorHex    string    `gorm:"column:color_hex;size:7;default:#6366f1"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}
