package inventory

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
)

// RepositoryAPI reads positions straight from the donation and delivery
// tables. PositionFor returns errors.ErrProgramNotFound for unknown programs.
type RepositoryAPI interface {
	PositionFor(ctx context.Context, programID int64, product string) (Position, error)
	ListPositions(ctx context.Context) ([]Position, error)
}

type Service struct {
	repo         RepositoryAPI
	lowThreshold int64
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, lowThreshold int64, logger *slog.Logger) *Service {
	if lowThreshold <= 0 {
		lowThreshold = DefaultLowStockThreshold
	}
	return &Service{
		repo:         repo,
		lowThreshold: lowThreshold,
		logger:       logger,
	}
}

func (s *Service) LowStockThreshold() int64 {
	return s.lowThreshold
}

// PositionFor matches the product exactly after trimming surrounding spaces.
func (s *Service) PositionFor(ctx context.Context, programID int64, product string) (Position, error) {
	product = strings.TrimSpace(product)
	if programID <= 0 {
		return Position{}, errors.NewValidationFieldError("program_id", "program_id is required", errors.ErrCodeValidationFailed)
	}
	if product == "" {
		return Position{}, errors.NewValidationFieldError("product", "product is required", errors.ErrCodeValidationFailed)
	}

	p, err := s.repo.PositionFor(ctx, programID, product)
	if err != nil {
		return Position{}, errors.WrapStore(err)
	}
	p.Status = s.StockStatus(p)
	return p, nil
}

// ListPositions is ordered by program code, then product description.
func (s *Service) ListPositions(ctx context.Context) ([]Position, error) {
	positions, err := s.repo.ListPositions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list inventory positions", "error", err)
		return nil, errors.WrapStore(err)
	}
	for i := range positions {
		positions[i].Status = s.StockStatus(positions[i])
	}
	return positions, nil
}

func (s *Service) StockStatus(p Position) Status {
	return Classify(p.Available, s.lowThreshold)
}
