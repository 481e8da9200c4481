package user

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

// RepositoryAPI is the IdentityStore. Username lookups are case-insensitive and
// a missing user comes back as errors.ErrUserNotFound.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	TouchLastLogin(ctx context.Context, id int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(u), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, errors.WrapStore(err)
	}
	return FromDataModel(u), nil
}

// ResolveActive returns the user only when it exists and is active.
func (s *Service) ResolveActive(ctx context.Context, id int64) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

// ResolveActor checks the identity recorded against a ledger write. A missing
// actor is an authentication failure; one that does not resolve to an active
// user is invalid input.
func (s *Service) ResolveActor(ctx context.Context, actor errors.Actor) (*User, error) {
	if actor.IsZero() {
		return nil, errors.ErrActorRequired
	}
	u, err := s.ResolveActive(ctx, actor.UserID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewValidationFieldError("actor", "actor is not an active user", errors.ErrCodeInvalidActor)
		}
		return nil, err
	}
	return u, nil
}

// TouchLastLogin is best effort: a failure is logged and swallowed.
func (s *Service) TouchLastLogin(ctx context.Context, id int64) {
	if err := s.repo.TouchLastLogin(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login", "user_id", id, "error", err)
	}
}

// Provision creates a user out of band (CLI, seeder). It is not reachable over HTTP.
func (s *Service) Provision(ctx context.Context, dto ProvisionDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	role, _ := ParseRole(dto.Role)

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Username:     strings.TrimSpace(dto.Username),
		FullName:     strings.TrimSpace(dto.FullName),
		Email:        strings.TrimSpace(dto.Email),
		PasswordHash: string(hash),
		Role:         string(role),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to provision user", "username", row.Username, "error", err)
		return nil, errors.WrapStore(err)
	}

	s.logger.InfoContext(ctx, "user provisioned", "user_id", row.ID, "username", row.Username, "role", row.Role)
	return FromDataModel(row), nil
}

type ProvisionDTO struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     string
}

func (dto ProvisionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(60)
	v.Field("full_name", dto.FullName).Required().MaxLength(150)
	v.Field("password", dto.Password).Required().Custom(func(value interface{}) *errors.AppError {
		if len(value.(string)) < 8 {
			return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("role", dto.Role).Required().OneOf([]string{string(RoleAdministrator), string(RoleAssistant)}, errors.ErrCodeValidationFailed)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
