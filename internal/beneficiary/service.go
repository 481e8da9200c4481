package beneficiary

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	beneficiaryDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/beneficiary"
)

type RepositoryAPI interface {
	Create(ctx context.Context, b *beneficiaryDatamodel.Beneficiary) error
	Update(ctx context.Context, b *beneficiaryDatamodel.Beneficiary) error
	GetByID(ctx context.Context, id int64) (*beneficiaryDatamodel.Beneficiary, error)
	List(ctx context.Context) ([]*beneficiaryDatamodel.Beneficiary, error)
	Deactivate(ctx context.Context, id int64) error
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

func (s *Service) RegisterBeneficiary(ctx context.Context, dto RegisterBeneficiaryDTO) (*Beneficiary, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	b := &Beneficiary{
		Code:     codes.New(codes.PrefixBeneficiary),
		IsActive: true,
	}
	apply(b, dto)

	row := ToDataModel(b)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to register beneficiary", "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "beneficiary registered", "beneficiary_id", row.ID, "code", row.Code)
	return FromDataModel(row), nil
}

func (s *Service) UpdateBeneficiary(ctx context.Context, id int64, dto UpdateBeneficiaryDTO) (*Beneficiary, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}

	b := FromDataModel(row)
	apply(b, dto)
	row = ToDataModel(b)

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to update beneficiary", "beneficiary_id", id, "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "beneficiary updated", "beneficiary_id", id)
	return b, nil
}

func (s *Service) GetBeneficiary(ctx context.Context, id int64) (*Beneficiary, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) ListBeneficiaries(ctx context.Context) ([]*Beneficiary, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	out := make([]*Beneficiary, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) DeactivateBeneficiary(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.WrapStore(err)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to deactivate beneficiary", "beneficiary_id", id, "error", err)
		return errors.WrapStore(err)
	}
	s.logger.InfoContext(ctx, "beneficiary deactivated", "beneficiary_id", id)
	return nil
}

// ResolveActive returns errors.ErrBeneficiaryNotFound for unknown or inactive ids.
func (s *Service) ResolveActive(ctx context.Context, id int64) (*Beneficiary, error) {
	b, err := s.GetBeneficiary(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, errors.ErrBeneficiaryNotFound
	}
	return b, nil
}

func apply(b *Beneficiary, dto RegisterBeneficiaryDTO) {
	b.FullName = strings.TrimSpace(dto.FullName)
	b.FamilySize = dto.familySize()
	b.Phone = strings.TrimSpace(dto.Phone)
	b.Address = strings.TrimSpace(dto.Address)
	b.District = strings.TrimSpace(dto.District)
	b.City = strings.TrimSpace(dto.City)
	b.Notes = strings.TrimSpace(dto.Notes)
}
