package auth_test

import (
	"context"
	goerrors "errors"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/frahmantamala/hopecare/internal/auth/sessionstore"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Access gate service", func() {
	var (
		users   *fakeUsers
		store   *sessionstore.Memory
		service *auth.Service
		now     time.Time
		ctx     context.Context
	)

	BeforeEach(func() {
		users = newFakeUsers()
		users.add(1, "admin", "admin-password", user.RoleAdministrator, true)
		users.add(2, "helper", "helper-password", user.RoleAssistant, true)
		users.add(3, "retired", "retired-password", user.RoleAssistant, false)

		store = sessionstore.NewMemory()
		now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		service = auth.NewService(users, store, 8*time.Hour, logger.Nop()).
			WithClock(func() time.Time { return now })
		ctx = context.Background()
	})

	Describe("Login", func() {
		It("opens a session bound to the user and its role", func() {
			session, u, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "admin-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(1)))
			Expect(session.Token).NotTo(BeEmpty())
			Expect(session.Role).To(Equal(user.RoleAdministrator))
			Expect(session.ExpiresAt).To(Equal(now.Add(8 * time.Hour)))
			Expect(users.touched).To(ConsistOf(int64(1)))
		})

		It("matches usernames without regard to case", func() {
			_, u, err := service.Login(ctx, auth.LoginDTO{Username: "ADMIN", Password: "admin-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("admin"))
		})

		It("issues a distinct token per login", func() {
			a, _, err := service.Login(ctx, auth.LoginDTO{Username: "helper", Password: "helper-password"})
			Expect(err).NotTo(HaveOccurred())
			b, _, err := service.Login(ctx, auth.LoginDTO{Username: "helper", Password: "helper-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Token).NotTo(Equal(b.Token))
		})

		DescribeTable("fails uniformly for bad credentials",
			func(username, password string) {
				_, _, err := service.Login(ctx, auth.LoginDTO{Username: username, Password: password})
				Expect(goerrors.Is(err, errors.ErrInvalidCredentials)).To(BeTrue())
				Expect(store.Len()).To(Equal(0))
			},
			Entry("wrong password", "admin", "nope"),
			Entry("unknown user", "ghost", "admin-password"),
			Entry("inactive user", "retired", "retired-password"),
		)

		It("rejects blank fields as a validation failure", func() {
			_, _, err := service.Login(ctx, auth.LoginDTO{Username: " ", Password: ""})
			Expect(errors.IsValidation(err)).To(BeTrue())
		})

		It("reports identity store outages as store failures", func() {
			users.failWith = goerrors.New("connection refused")
			_, _, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "admin-password"})
			Expect(errors.IsStoreFailure(err)).To(BeTrue())
		})
	})

	Describe("ResolveSession", func() {
		It("requires a token", func() {
			_, err := service.ResolveSession(ctx, "")
			Expect(goerrors.Is(err, errors.ErrSessionRequired)).To(BeTrue())
		})

		It("treats unknown tokens as anonymous", func() {
			_, err := service.ResolveSession(ctx, "forged")
			Expect(goerrors.Is(err, errors.ErrSessionRequired)).To(BeTrue())
		})

		It("expires sessions and removes them on read", func() {
			session, _, err := service.Login(ctx, auth.LoginDTO{Username: "helper", Password: "helper-password"})
			Expect(err).NotTo(HaveOccurred())

			resolved, err := service.ResolveSession(ctx, session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.UserID).To(Equal(int64(2)))

			now = now.Add(8 * time.Hour)
			_, err = service.ResolveSession(ctx, session.Token)
			Expect(goerrors.Is(err, errors.ErrSessionExpired)).To(BeTrue())
			Expect(store.Len()).To(Equal(0))
		})
	})

	Describe("Logout", func() {
		It("invalidates the session", func() {
			session, _, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "admin-password"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Logout(ctx, session.Token)).To(Succeed())
			_, err = service.ResolveSession(ctx, session.Token)
			Expect(goerrors.Is(err, errors.ErrSessionRequired)).To(BeTrue())
		})

		It("is a no-op without a token", func() {
			Expect(service.Logout(ctx, "")).To(Succeed())
		})
	})

	It("sweeps expired sessions", func() {
		_, _, err := service.Login(ctx, auth.LoginDTO{Username: "admin", Password: "admin-password"})
		Expect(err).NotTo(HaveOccurred())
		now = now.Add(4 * time.Hour)
		_, _, err = service.Login(ctx, auth.LoginDTO{Username: "helper", Password: "helper-password"})
		Expect(err).NotTo(HaveOccurred())

		now = now.Add(5 * time.Hour)
		n, err := service.SweepExpired(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(store.Len()).To(Equal(1))
	})
})

var _ = Describe("Authorize", func() {
	admin := &auth.Session{UserID: 1, Role: user.RoleAdministrator}
	assistant := &auth.Session{UserID: 2, Role: user.RoleAssistant}

	DescribeTable("decides by capability and role",
		func(session *auth.Session, required auth.Capability, expected auth.Decision) {
			Expect(auth.Authorize(session, required)).To(Equal(expected))
		},
		Entry("anonymous on public", nil, auth.CapabilityPublic, auth.Allow),
		Entry("anonymous on authenticated", nil, auth.CapabilityAuthenticated, auth.RedirectToLogin),
		Entry("anonymous on admin", nil, auth.CapabilityAdminOnly, auth.RedirectToLogin),
		Entry("assistant on authenticated", assistant, auth.CapabilityAuthenticated, auth.Allow),
		Entry("assistant on admin", assistant, auth.CapabilityAdminOnly, auth.RedirectToHome),
		Entry("admin on admin", admin, auth.CapabilityAdminOnly, auth.Allow),
	)
})
