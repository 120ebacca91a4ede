package category

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/finance-tracker/internal"
)

type RepositoryAPI interface {
	DistinctByOwner(ctx context.Context, ownerID int64, kind string) ([]string, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListCategories returns the presets for kind followed by any other
// categories the owner has already used for that kind.
func (s *Service) ListCategories(ctx context.Context, ownerID int64, kind string) ([]Category, error) {
	if kind == "" {
		kind = KindExpense
	}
	if _, ok := presets[kind]; !ok {
		return nil, errors.NewValidationFieldError("type", "type must be one of: Expense, Income", errors.ErrCodeInvalidKind)
	}

	used, err := s.repo.DistinctByOwner(ctx, ownerID, kind)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "user_id", ownerID)
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]Category, 0, len(presets[kind])+len(used))
	for _, name := range presets[kind] {
		seen[name] = true
		categories = append(categories, Category{Name: name, Preset: true})
	}
	for _, name := range used {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		categories = append(categories, Category{Name: name})
	}
	return categories, nil
}
