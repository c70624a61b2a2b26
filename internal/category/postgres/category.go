package postgres

import (
	"context"
	"errors"

	"github.com/techcorp/internal-tools/internal/category"
	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}
