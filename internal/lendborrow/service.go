package lendborrow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	lbDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/lendborrow"
)

type RepositoryAPI interface {
	Create(ctx context.Context, r *lbDatamodel.LendBorrow) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*lbDatamodel.LendBorrow, error)
	UpdateStatus(ctx context.Context, id, ownerID int64, status string) error
	ExistsForOwner(ctx context.Context, id, ownerID int64) (bool, error)
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRecord stores a new pending record. Date defaults to today.
func (s *Service) CreateRecord(ctx context.Context, ownerID int64, dto CreateRecordDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model := &lbDatamodel.LendBorrow{
		UserID: ownerID,
		Person: strings.TrimSpace(dto.Person),
		Kind:   dto.Kind,
		Amount: dto.Amount,
		Date:   validation.ParseDateOr(dto.Date, validation.Today()),
		Reason: dto.Reason,
		Status: StatusPending,
	}
	if dto.DueDate != "" {
		due, _ := time.Parse(validation.DateLayout, dto.DueDate)
		model.DueDate = &due
	}

	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create lend/borrow record", "error", err, "user_id", ownerID)
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) ListRecords(ctx context.Context, ownerID int64) ([]*Record, error) {
	models, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(models))
	for _, m := range models {
		records = append(records, FromDataModel(m))
	}
	return records, nil
}

// UpdateStatus leaves the record unchanged when status is empty, but the
// record must still belong to the owner.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, id int64, dto UpdateStatusDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.Status == "" {
		exists, err := s.repo.ExistsForOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrRecordNotFound
		}
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, id, ownerID, dto.Status); err != nil {
		return err
	}
	s.logger.Info("lend/borrow status updated", "record_id", id, "user_id", ownerID, "status", dto.Status)
	return nil
}

func (s *Service) DeleteRecord(ctx context.Context, ownerID, id int64) error {
	return s.repo.DeleteForOwner(ctx, id, ownerID)
}
