package donation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/codes"
	donationDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/donation"
	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/internal/currency"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/shopspring/decimal"
)

type RepositoryAPI interface {
	Create(ctx context.Context, d *donationDatamodel.Donation) error
	List(ctx context.Context) ([]*donationDatamodel.Donation, error)
}

type DonorResolver interface {
	ResolveActive(ctx context.Context, id int64) (*donor.Donor, error)
}

type ProgramResolver interface {
	ResolveActive(ctx context.Context, id int64) (*program.Program, error)
}

type CurrencyResolver interface {
	Resolve(ctx context.Context, id *int64, code string) (*currency.Currency, error)
	ListCurrencies(ctx context.Context) ([]*currency.Currency, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, actor errors.Actor) (*user.User, error)
}

type Deps struct {
	Repo       RepositoryAPI
	Donors     DonorResolver
	Programs   ProgramResolver
	Currencies CurrencyResolver
	Actors     ActorResolver
	Events     events.Publisher
	Metrics    *metrics.Ledger
}

type Service struct {
	Deps
	logger *slog.Logger
	now    func() time.Time
}

func NewService(deps Deps, logger *slog.Logger) *Service {
	return &Service{
		Deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) RecordMoneyDonation(ctx context.Context, dto MoneyDonationDTO, actor errors.Actor) (*Donation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Actors.ResolveActor(ctx, actor); err != nil {
		return nil, err
	}
	if err := s.resolveParties(ctx, dto.DonorID, dto.ProgramID); err != nil {
		return nil, err
	}
	cur, err := s.Currencies.Resolve(ctx, dto.CurrencyID, dto.CurrencyCode)
	if err != nil {
		return nil, err
	}

	currencyID := cur.ID
	d := &Donation{
		Code:         codes.New(codes.PrefixDonation),
		Kind:         KindMoney,
		DonorID:      dto.DonorID,
		ProgramID:    dto.ProgramID,
		DonationDate: s.donationDate(dto.DonationDate),
		Amount:       dto.Amount.Round(2),
		CurrencyID:   &currencyID,
		BaseAmount:   cur.ToBase(dto.Amount),
		UnitValue:    decimal.Zero,
		Notes:        strings.TrimSpace(dto.Notes),
		CreatedBy:    actor.UserID,
	}
	return s.record(ctx, d)
}

func (s *Service) RecordProductDonation(ctx context.Context, dto ProductDonationDTO, actor errors.Actor) (*Donation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Actors.ResolveActor(ctx, actor); err != nil {
		return nil, err
	}
	if err := s.resolveParties(ctx, dto.DonorID, dto.ProgramID); err != nil {
		return nil, err
	}

	unitValue := dto.UnitValue.Round(2)
	d := &Donation{
		Code:               codes.New(codes.PrefixDonation),
		Kind:               KindProduct,
		DonorID:            dto.DonorID,
		ProgramID:          dto.ProgramID,
		DonationDate:       s.donationDate(dto.DonationDate),
		Amount:             decimal.Zero,
		BaseAmount:         unitValue.Mul(decimal.NewFromInt(dto.Quantity)),
		ProductDescription: strings.TrimSpace(dto.ProductDescription),
		Quantity:           dto.Quantity,
		UnitValue:          unitValue,
		Notes:              strings.TrimSpace(dto.Notes),
		CreatedBy:          actor.UserID,
	}
	return s.record(ctx, d)
}

func (s *Service) ListDonations(ctx context.Context) ([]*Donation, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	out := make([]*Donation, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) ListCurrencies(ctx context.Context) ([]*currency.Currency, error) {
	return s.Currencies.ListCurrencies(ctx)
}

func (s *Service) record(ctx context.Context, d *Donation) (*Donation, error) {
	row := ToDataModel(d)
	row.CreatedAt = s.now().UTC()
	if err := s.Repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to record donation", "kind", d.Kind, "error", err)
		return nil, errors.WrapStore(err)
	}
	recorded := FromDataModel(row)

	s.Metrics.DonationRecorded(string(recorded.Kind))
	s.logger.InfoContext(ctx, "donation recorded",
		"donation_id", recorded.ID,
		"code", recorded.Code,
		"kind", recorded.Kind,
		"program_id", recorded.ProgramID,
		"base_amount", recorded.BaseAmount.StringFixed(2))

	if s.Events != nil {
		evt := events.NewDonationRecordedEvent(recorded.ID, recorded.Code, string(recorded.Kind), recorded.ProgramID,
			recorded.ProductDescription, recorded.Quantity, recorded.BaseAmount, recorded.CreatedBy)
		if err := s.Events.Publish(ctx, evt); err != nil {
			s.logger.WarnContext(ctx, "failed to publish donation event", "donation_id", recorded.ID, "error", err)
		}
	}
	return recorded, nil
}

// resolveParties maps unknown or inactive donor/program ids to validation
// failures; on a write they are bad input, not missing resources.
func (s *Service) resolveParties(ctx context.Context, donorID, programID int64) error {
	if _, err := s.Donors.ResolveActive(ctx, donorID); err != nil {
		return invalidReference(err, "donor_id", "donor does not exist or is inactive", errors.ErrCodeInvalidDonor)
	}
	if _, err := s.Programs.ResolveActive(ctx, programID); err != nil {
		return invalidReference(err, "program_id", "program does not exist or is inactive", errors.ErrCodeInvalidProgram)
	}
	return nil
}

func (s *Service) donationDate(given *time.Time) time.Time {
	if given == nil || given.IsZero() {
		return s.now().UTC()
	}
	return given.UTC()
}

func invalidReference(err error, field, message string, code errors.ErrorCode) error {
	if errors.IsNotFound(err) {
		return errors.NewValidationFieldError(field, message, code)
	}
	return errors.WrapStore(err)
}
