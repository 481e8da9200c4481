package program

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	programDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/program"
)

type RepositoryAPI interface {
	Create(ctx context.Context, p *programDatamodel.Program) error
	GetByID(ctx context.Context, id int64) (*programDatamodel.Program, error)
	List(ctx context.Context) ([]*programDatamodel.Program, error)
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateProgram starts the program today when no start date is given.
func (s *Service) CreateProgram(ctx context.Context, dto CreateProgramDTO) (*Program, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	start := dto.StartDate
	if start == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		start = &today
	}

	p := &Program{
		Code:        codes.New(codes.PrefixProgram),
		Name:        strings.TrimSpace(dto.Name),
		Description: strings.TrimSpace(dto.Description),
		ProgramType: strings.TrimSpace(dto.ProgramType),
		StartDate:   start,
		EndDate:     dto.EndDate,
		IsActive:    true,
	}

	row := ToDataModel(p)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to create program", "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "program created", "program_id", row.ID, "code", row.Code)
	return FromDataModel(row), nil
}

func (s *Service) GetProgram(ctx context.Context, id int64) (*Program, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) ListPrograms(ctx context.Context) ([]*Program, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	out := make([]*Program, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) DeactivateProgram(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.WrapStore(err)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to deactivate program", "program_id", id, "error", err)
		return errors.WrapStore(err)
	}
	s.logger.InfoContext(ctx, "program deactivated", "program_id", id)
	return nil
}

// ResolveActive returns errors.ErrProgramNotFound for unknown or inactive ids.
func (s *Service) ResolveActive(ctx context.Context, id int64) (*Program, error) {
	p, err := s.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errors.ErrProgramNotFound
	}
	return p, nil
}
