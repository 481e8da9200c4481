package user

import (
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/user"
)

type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleAssistant     Role = "Assistant"
)

// ParseRole accepts the role name in any case.
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(s, string(RoleAdministrator)):
		return RoleAdministrator, true
	case strings.EqualFold(s, string(RoleAssistant)):
		return RoleAssistant, true
	}
	return "", false
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         Role(u.Role),
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
