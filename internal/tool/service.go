package tool

import (
	"context"
	"log/slog"
	"time"

	"github.com/techcorp/internal-tools/internal"
	toolDatamodel "github.com/techcorp/internal-tools/internal/core/datamodel/tool"
)

// RepositoryAPI defines the data access methods for tools. Get methods return
// nil without error when the row does not exist.
type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*toolDatamodel.ToolWithCategory, error)
	GetByID(ctx context.Context, id int64) (*toolDatamodel.ToolWithCategory, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
	Create(ctx context.Context, tool *toolDatamodel.Tool) error
	Update(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) (bool, error)
	// Transaction runs fn against a repository bound to one database
	// transaction, committing when fn returns nil.
	Transaction(ctx context.Context, fn func(repo RepositoryAPI) error) error
}

// Service handles tool business logic
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListTools(ctx context.Context, query ListToolsQuery) ([]*Tool, error) {
	filter, err := query.ToFilter()
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tools", "error", err)
		return nil, internal.NewInternalError("failed to list tools", err)
	}

	return FromDataModels(rows), nil
}

func (s *Service) GetTool(ctx context.Context, id int64) (*Tool, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get tool", "error", err, "tool_id", id)
		return nil, internal.NewInternalError("failed to get tool", err)
	}
	if row == nil {
		return nil, internal.ToolNotFound(id)
	}
	return FromDataModel(row), nil
}

// CreateTool validates the payload, checks the category and inserts the tool
// in one transaction.
func (s *Service) CreateTool(ctx context.Context, dto CreateToolDTO) (*Tool, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Debug("tool validation failed", "error", err)
		return nil, err
	}

	var created *toolDatamodel.ToolWithCategory
	err := s.repo.Transaction(ctx, func(repo RepositoryAPI) error {
		exists, err := repo.CategoryExists(ctx, *dto.CategoryID)
		if err != nil {
			return internal.NewInternalError("failed to check category", err)
		}
		if !exists {
			return internal.CategoryNotFound(*dto.CategoryID)
		}

		model := dto.ToDataModel(s.now())
		if err := repo.Create(ctx, model); err != nil {
			return internal.NewInternalError("failed to create tool", err)
		}

		created, err = repo.GetByID(ctx, model.ID)
		if err != nil {
			return internal.NewInternalError("failed to reload tool", err)
		}
		if created == nil {
			return internal.NewInternalError("created tool vanished", nil)
		}
		return nil
	})
	if err != nil {
		s.logError("failed to create tool", err)
		return nil, err
	}

	s.logger.Info("tool created",
		"tool_id", created.ID,
		"category_id", created.CategoryID,
		"monthly_cost", created.MonthlyCost.String())

	return FromDataModel(created), nil
}

// UpdateTool applies only the supplied fields and refreshes updated_at.
func (s *Service) UpdateTool(ctx context.Context, id int64, dto UpdateToolDTO) (*Tool, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Debug("tool update validation failed", "error", err, "tool_id", id)
		return nil, err
	}

	var updated *toolDatamodel.ToolWithCategory
	err := s.repo.Transaction(ctx, func(repo RepositoryAPI) error {
		exists, err := repo.Exists(ctx, id)
		if err != nil {
			return internal.NewInternalError("failed to check tool", err)
		}
		if !exists {
			return internal.ToolNotFound(id)
		}

		if dto.CategoryID != nil {
			ok, err := repo.CategoryExists(ctx, *dto.CategoryID)
			if err != nil {
				return internal.NewInternalError("failed to check category", err)
			}
			if !ok {
				return internal.CategoryNotFound(*dto.CategoryID)
			}
		}

		changes := dto.Changes()
		changes["updated_at"] = s.now()
		if err := repo.Update(ctx, id, changes); err != nil {
			return internal.NewInternalError("failed to update tool", err)
		}

		updated, err = repo.GetByID(ctx, id)
		if err != nil {
			return internal.NewInternalError("failed to reload tool", err)
		}
		if updated == nil {
			return internal.ToolNotFound(id)
		}
		return nil
	})
	if err != nil {
		s.logError("failed to update tool", err, "tool_id", id)
		return nil, err
	}

	s.logger.Info("tool updated", "tool_id", id, "fields", len(dto.Changes()))
	return FromDataModel(updated), nil
}

func (s *Service) DeleteTool(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete tool", "error", err, "tool_id", id)
		return internal.NewInternalError("failed to delete tool", err)
	}
	if !deleted {
		return internal.ToolNotFound(id)
	}

	s.logger.Info("tool deleted", "tool_id", id)
	return nil
}

// logError logs client errors at debug level and everything else as errors.
func (s *Service) logError(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode < 500 {
		s.logger.Debug(msg, args...)
		return
	}
	s.logger.Error(msg, args...)
}
