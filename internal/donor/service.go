package donor

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	donorDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donor"
)

// RepositoryAPI returns errors.ErrDonorNotFound for unknown ids.
type RepositoryAPI interface {
	Create(ctx context.Context, d *donorDatamodel.Donor) error
	Update(ctx context.Context, d *donorDatamodel.Donor) error
	GetByID(ctx context.Context, id int64) (*donorDatamodel.Donor, error)
	List(ctx context.Context) ([]*donorDatamodel.Donor, error)
	SearchActive(ctx context.Context, term string) ([]*donorDatamodel.Donor, error)
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

func (s *Service) RegisterDonor(ctx context.Context, dto RegisterDonorDTO) (*Donor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	donorType, _ := ParseType(dto.DonorType)

	d := &Donor{
		Code:     codes.New(codes.PrefixDonor),
		FullName: strings.TrimSpace(dto.FullName),
		Email:    strings.TrimSpace(dto.Email),
		Phone:    strings.TrimSpace(dto.Phone),
		Type:     donorType,
		Address:  strings.TrimSpace(dto.Address),
		IsActive: true,
	}

	row := ToDataModel(d)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to register donor", "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "donor registered", "donor_id", row.ID, "code", row.Code, "type", row.DonorType)
	return FromDataModel(row), nil
}

func (s *Service) UpdateDonor(ctx context.Context, id int64, dto UpdateDonorDTO) (*Donor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	donorType, _ := ParseType(dto.DonorType)

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}

	row.FullName = strings.TrimSpace(dto.FullName)
	row.Email = strings.TrimSpace(dto.Email)
	row.Phone = strings.TrimSpace(dto.Phone)
	row.DonorType = string(donorType)
	row.Address = strings.TrimSpace(dto.Address)

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to update donor", "donor_id", id, "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "donor updated", "donor_id", id)
	return FromDataModel(row), nil
}

// SearchDonors matches term case-insensitively against name, code and email of
// active donors. A blank term returns every active donor.
func (s *Service) SearchDonors(ctx context.Context, term string) ([]*Donor, error) {
	rows, err := s.repo.SearchActive(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return fromDataModels(rows), nil
}

func (s *Service) GetDonor(ctx context.Context, id int64) (*Donor, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) ListDonors(ctx context.Context) ([]*Donor, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return fromDataModels(rows), nil
}

func (s *Service) DeactivateDonor(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return errors.WrapStore(err)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to deactivate donor", "donor_id", id, "error", err)
		return errors.WrapStore(err)
	}
	s.logger.InfoContext(ctx, "donor deactivated", "donor_id", id)
	return nil
}

// ResolveActive returns the donor only when it exists and is active;
// otherwise errors.ErrDonorNotFound.
func (s *Service) ResolveActive(ctx context.Context, id int64) (*Donor, error) {
	d, err := s.GetDonor(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, errors.ErrDonorNotFound
	}
	return d, nil
}
