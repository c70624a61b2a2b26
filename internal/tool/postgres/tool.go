package postgres

import (
	"context"
	"errors"
	"strings"

	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
	"github.com/techcorp/internal-tools/internal/tool"
	"gorm.io/gorm"
)

// ToolRepository implements tool.RepositoryAPI using GORM
type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) tool.RepositoryAPI {
	return &ToolRepository{db: db}
}

func (r *ToolRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tools AS t").
		Select("t.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = t.category_id")
}

// List filters with LOWER/LIKE so the same statement runs on Postgres and SQLite.
func (r *ToolRepository) List(ctx context.Context, filter tool.ListFilter) ([]*toolDatamodel.ToolWithCategory, error) {
	q := r.withCategory(ctx)

	if filter.CategoryID != nil {
		q = q.Where("t.category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		q = q.Where("t.status = ?", *filter.Status)
	}
	if filter.Vendor != "" {
		q = q.Where("LOWER(t.vendor) LIKE ?", likePattern(filter.Vendor))
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("(LOWER(t.name) LIKE ? OR LOWER(COALESCE(t.description, '')) LIKE ?)", pattern, pattern)
	}

	rows := make([]*toolDatamodel.ToolWithCategory, 0)
	err := q.Order("t.id ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *ToolRepository) GetByID(ctx context.Context, id int64) (*toolDatamodel.ToolWithCategory, error) {
	var row toolDatamodel.ToolWithCategory
	err := r.withCategory(ctx).Where("t.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ToolRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&toolDatamodel.Tool{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ToolRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&categoryDatamodel.Category{}).Where("id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

func (r *ToolRepository) Create(ctx context.Context, t *toolDatamodel.Tool) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update writes only the given columns.
func (r *ToolRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&toolDatamodel.Tool{}).
		Where("id = ?", id).
		Updates(changes).Error
}

func (r *ToolRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&toolDatamodel.Tool{})
	return result.RowsAffected > 0, result.Error
}

func (r *ToolRepository) Transaction(ctx context.Context, fn func(repo tool.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ToolRepository{db: tx})
	})
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
