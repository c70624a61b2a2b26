package category

import (
	"context"
	"log/slog"

	"github.com/techcorp/internal-tools/internal"
	categoryDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
	GetByName(ctx context.Context, name string) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, internal.NewInternalError("failed to get categories", err)
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		responses = append(responses, FromDataModel(dataCategory).ToResponse())
	}

	s.logger.Debug("retrieved categories", "count", len(responses))
	return responses, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*CategoryResponse, error) {
	dataCategory, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get category from repository", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get category", err)
	}
	if dataCategory == nil {
		return nil, internal.CategoryNotFound(id)
	}

	response := FromDataModel(dataCategory).ToResponse()
	return &response, nil
}
