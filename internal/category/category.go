package category

import (
	"time"

	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
)

type Category struct {
	ID          int64
	Name        string
	Description *string
	ColorHex    string
	CreatedAt   time.Time
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ColorHex:    c.ColorHex,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCategory(name string, description *string, colorHex string) *Category {
	if colorHex == "" {
		colorHex = categoryDatamodel.DefaultColorHex
	}
	return &Category{
		Name:        name,
		Description: description,
		ColorHex:    colorHex,
		CreatedAt:   time.Now().UTC(),
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ColorHex:    c.ColorHex,
		CreatedAt:   c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ColorHex:    c.ColorHex,
		CreatedAt:   c.CreatedAt,
	}
}
