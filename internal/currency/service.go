package currency

import (
	"context"
	goerrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
)

// ErrNotFound is returned by repositories for unknown or inactive currencies.
var ErrNotFound = goerrors.New("currency not found")

type RepositoryAPI interface {
	GetActiveByID(ctx context.Context, id int64) (*currencyDatamodel.Currency, error)
	GetActiveByCode(ctx context.Context, code string) (*currencyDatamodel.Currency, error)
	ListActive(ctx context.Context) ([]*currencyDatamodel.Currency, error)
	Create(ctx context.Context, c *currencyDatamodel.Currency) error
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

// Resolve finds an active currency by id, or by ISO code when id is nil.
// Anything that does not resolve is a validation failure.
func (s *Service) Resolve(ctx context.Context, id *int64, code string) (*Currency, error) {
	var (
		row *currencyDatamodel.Currency
		err error
	)
	switch {
	case id != nil:
		row, err = s.repo.GetActiveByID(ctx, *id)
	case strings.TrimSpace(code) != "":
		row, err = s.repo.GetActiveByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	default:
		return nil, errors.NewValidationFieldError("currency", "currency is required", errors.ErrCodeInvalidCurrency)
	}
	if err != nil {
		if goerrors.Is(err, ErrNotFound) {
			return nil, errors.NewValidationFieldError("currency", "currency does not exist or is inactive", errors.ErrCodeInvalidCurrency)
		}
		s.logger.ErrorContext(ctx, "failed to resolve currency", "error", err)
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(row), nil
}

func (s *Service) ListCurrencies(ctx context.Context) ([]*Currency, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	out := make([]*Currency, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}
