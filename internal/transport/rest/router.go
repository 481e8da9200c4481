package rest

import (
	"net/http"
	"time"

	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	"github.com/frahmantamala/hopecare/internal/delivery"
	"github.com/frahmantamala/hopecare/internal/donation"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/inventory"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/report"
	"github.com/frahmantamala/hopecare/internal/transport/middleware"
	"github.com/frahmantamala/hopecare/internal/transport/swagger"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	Health        *HealthHandler
	Auth          *auth.Handler
	Users         *user.Handler
	Donors        *donor.Handler
	Beneficiaries *beneficiary.Handler
	Programs      *program.Handler
	Donations     *donation.Handler
	Inventory     *inventory.Handler
	Deliveries    *delivery.Handler
	Reports       *report.Handler
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// LoginLimiter throttles POST /login per client IP; nil disables it.
	LoginLimiter *middleware.IPRateLimiter
	HTTPMetrics  *metrics.HTTP
	Gatherer     prometheus.Gatherer
	MetricsPath  string
	OpenAPIPath  string
}

// RegisterAllRoutes mounts every route in its access class: public,
// authenticated (any session) or admin only.
func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	if opts.HTTPMetrics != nil {
		router.Use(opts.HTTPMetrics.Instrument)
	}
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	// public
	if h.Health != nil {
		router.Get("/health", h.Health.Health)
		router.Get("/ping", h.Health.Ping)
	}
	if opts.Gatherer != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, metrics.Handler(opts.Gatherer))
	}
	if opts.OpenAPIPath != "" {
		router.Get(swagger.SpecRoute, swagger.SpecHandler(opts.OpenAPIPath))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Get("/login", h.Auth.LoginPage)
	router.Group(func(r chi.Router) {
		if opts.LoginLimiter != nil {
			r.Use(opts.LoginLimiter.Middleware)
		}
		r.Post("/login", h.Auth.Login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.Auth.Gate(auth.CapabilityAuthenticated))

		r.Get("/logout", h.Auth.Logout)
		r.Get("/", h.Reports.Dashboard)
		r.Get("/reports/dashboard", h.Reports.Dashboard)
		r.Get("/me", h.Users.GetCurrentUser)

		r.Route("/donations", func(dr chi.Router) {
			dr.Get("/", h.Donations.ListDonations)
			dr.Get("/currencies", h.Donations.ListCurrencies)
			dr.Post("/money", h.Donations.RecordMoneyDonation)
			dr.Post("/product", h.Donations.RecordProductDonation)
		})

		r.Route("/deliveries", func(dr chi.Router) {
			dr.Get("/", h.Deliveries.ListDeliveries)
			dr.Post("/", h.Deliveries.PerformDelivery)
		})

		r.Route("/inventory", func(ir chi.Router) {
			ir.Get("/", h.Inventory.ListPositions)
			ir.Get("/position", h.Inventory.PositionFor)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(h.Auth.Gate(auth.CapabilityAdminOnly))

		r.Route("/donors", func(dr chi.Router) {
			dr.Get("/", h.Donors.ListDonors)
			dr.Post("/", h.Donors.RegisterDonor)
			dr.Get("/{id}", h.Donors.GetDonor)
			dr.Put("/{id}", h.Donors.UpdateDonor)
			dr.Delete("/{id}", h.Donors.DeactivateDonor)
		})

		r.Route("/beneficiaries", func(br chi.Router) {
			br.Get("/", h.Beneficiaries.ListBeneficiaries)
			br.Post("/", h.Beneficiaries.RegisterBeneficiary)
			br.Get("/{id}", h.Beneficiaries.GetBeneficiary)
			br.Put("/{id}", h.Beneficiaries.UpdateBeneficiary)
			br.Delete("/{id}", h.Beneficiaries.DeactivateBeneficiary)
		})

		r.Route("/programs", func(pr chi.Router) {
			pr.Get("/", h.Programs.ListPrograms)
			pr.Post("/", h.Programs.CreateProgram)
			pr.Get("/{id}", h.Programs.GetProgram)
			pr.Delete("/{id}", h.Programs.DeactivateProgram)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
}
