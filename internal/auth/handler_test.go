package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/frahmantamala/hopecare/internal/auth/sessionstore"
	"github.com/frahmantamala/hopecare/internal/transport"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Access gate handler", func() {
	var (
		handler *auth.Handler
		mux     *http.ServeMux
	)

	login := func(username, password string) *http.Cookie {
		form := url.Values{"username": {username}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
		for _, c := range rec.Result().Cookies() {
			if c.Name == "hopecare_session" {
				return c
			}
		}
		Fail("no session cookie set")
		return nil
	}

	get := func(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		users := newFakeUsers()
		users.add(1, "admin", "admin-password", user.RoleAdministrator, true)
		users.add(2, "helper", "helper-password", user.RoleAssistant, true)

		svc := auth.NewService(users, sessionstore.NewMemory(), time.Hour, logger.Nop())
		handler = auth.NewHandler(transport.NewBaseHandler(logger.Nop()), svc, auth.CookieConfig{})

		echoActor := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ := errors.ActorFromContext(r.Context())
			_ = json.NewEncoder(w).Encode(map[string]any{"user_id": actor.UserID})
		})

		mux = http.NewServeMux()
		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				handler.Login(w, r)
				return
			}
			handler.LoginPage(w, r)
		})
		mux.Handle("/logout", handler.Gate(auth.CapabilityAuthenticated)(http.HandlerFunc(handler.Logout)))
		mux.Handle("/dashboard", handler.Gate(auth.CapabilityAuthenticated)(echoActor))
		mux.Handle("/donors", handler.Gate(auth.CapabilityAdminOnly)(echoActor))
	})

	It("redirects anonymous visitors to the login page", func() {
		rec := get("/dashboard", nil)
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/login"))
	})

	It("places the actor in the request context", func() {
		rec := get("/dashboard", login("helper", "helper-password"))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"user_id":2`))
	})

	It("sends assistants home from administrator resources", func() {
		rec := get("/donors", login("helper", "helper-password"))
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/"))
	})

	It("lets administrators reach administrator resources", func() {
		rec := get("/donors", login("admin", "admin-password"))
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("accepts the token as a bearer header", func() {
		cookie := login("admin", "admin-password")
		req := httptest.NewRequest(http.MethodGet, "/donors", nil)
		req.Header.Set("Authorization", "Bearer "+cookie.Value)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("sends logged-in users away from the login page", func() {
		rec := get("/login", login("helper", "helper-password"))
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/"))
	})

	It("rejects bad credentials with 401 and no cookie", func() {
		body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/login", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Result().Cookies()).To(BeEmpty())
		Expect(rec.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
	})

	It("invalidates the session on logout", func() {
		cookie := login("helper", "helper-password")

		rec := get("/logout", cookie)
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/login"))

		rec = get("/dashboard", cookie)
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/login"))
	})
})
