package auth

import (
	"time"

	"github.com/frahmantamala/hopecare/internal/core/common/validation"
	"github.com/frahmantamala/hopecare/internal/user"
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

type LoginPageResponse struct {
	Message string `json:"message"`
}
