package auth

import (
	"context"
	"net/http"
	"strings"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/transport"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
)

// ServiceAPI is what the HTTP layer needs from the gate.
type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*Session, *user.User, error)
	ResolveSession(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	cookie  CookieConfig
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = "hopecare_session"
	}
	return &Handler{
		BaseHandler: base,
		Service:     svc,
		cookie:      cookie,
	}
}

// LoginPage answers GET /login. A visitor who already holds a live session is
// sent to the dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if token := h.tokenFromRequest(r); token != "" {
		if _, err := h.Service.ResolveSession(r.Context(), token); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.WriteJSON(w, http.StatusOK, LoginPageResponse{Message: "please sign in"})
}

// Login accepts JSON or a classic form post.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := h.DecodeJSON(r, &dto); err != nil {
			h.WriteAppError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.WriteAppError(w, r, errors.NewValidationError("invalid form body", errors.ErrCodeInvalidRequestBody))
			return
		}
		dto.Username = r.PostForm.Get("username")
		dto.Password = r.PostForm.Get("password")
	}

	session, u, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      u,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.tokenFromRequest(r)); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Gate guards a route group with the given capability. Allowed requests carry
// the session and the actor in their context.
func (h *Handler) Gate(required Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session *Session
			if required != CapabilityPublic {
				s, err := h.Service.ResolveSession(r.Context(), h.tokenFromRequest(r))
				switch {
				case err == nil:
					session = s
				case errors.IsUnauthorized(err):
				default:
					h.WriteAppError(w, r, err)
					return
				}
			}

			switch Authorize(session, required) {
			case RedirectToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			case RedirectToHome:
				logger.From(r.Context()).InfoContext(r.Context(), "administrator resource refused",
					"user_id", session.UserID,
					"path", r.URL.Path)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := r.Context()
			if session != nil {
				ctx = context.WithValue(ctx, errors.ContextSessionKey, session)
				ctx = errors.ContextWithActor(ctx, errors.Actor{
					UserID:   session.UserID,
					Username: session.Username,
					Role:     string(session.Role),
				})
				ctx = logger.With(ctx, "user_id", session.UserID, "role", session.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed there by Gate.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(errors.ContextSessionKey).(*Session)
	return s, ok && s != nil
}

// tokenFromRequest prefers the session cookie and falls back to a bearer header.
func (h *Handler) tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(h.cookie.Name); err == nil && c.Value != "" {
		return c.Value
	}
	return h.ExtractTokenFromHeader(r)
}
