package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/frahmantamala/hopecare/internal/auth/sessionstore"
	"github.com/frahmantamala/hopecare/internal/beneficiary"
	"github.com/frahmantamala/hopecare/internal/core/testdb"
	"github.com/frahmantamala/hopecare/internal/delivery"
	"github.com/frahmantamala/hopecare/internal/donation"
	"github.com/frahmantamala/hopecare/internal/donor"
	"github.com/frahmantamala/hopecare/internal/inventory"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/report"
	reportPostgres "github.com/frahmantamala/hopecare/internal/report/postgres"
	"github.com/frahmantamala/hopecare/internal/transport"
	"github.com/frahmantamala/hopecare/internal/transport/rest"
	"github.com/frahmantamala/hopecare/internal/transport/swagger"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

const specPath = "../../../api/openapi.yml"

var _ = Describe("Router", func() {
	var (
		ledger *testdb.Ledger
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		ledger, err = testdb.NewLedger()
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := ledger.DB.DB()
		Expect(err).NotTo(HaveOccurred())

		lg := logger.Nop()
		base := transport.NewBaseHandler(lg)
		authService := auth.NewService(ledger.Users, sessionstore.NewMemory(), time.Hour, lg)
		reports := report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(sqlDB, "sqlite3")), ledger.Inventory, lg)
		reg := prometheus.NewRegistry()

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:        rest.NewHealthHandler(sqlDB),
			Auth:          auth.NewHandler(base, authService, auth.CookieConfig{}),
			Users:         user.NewHandler(base, ledger.Users),
			Donors:        donor.NewHandler(base, ledger.Donors),
			Beneficiaries: beneficiary.NewHandler(base, ledger.Beneficiaries),
			Programs:      program.NewHandler(base, ledger.Programs),
			Donations:     donation.NewHandler(base, ledger.Donations),
			Inventory:     inventory.NewHandler(base, ledger.Inventory),
			Deliveries:    delivery.NewHandler(base, ledger.Deliveries),
			Reports:       report.NewHandler(base, reports),
		}, rest.Options{
			HTTPMetrics: metrics.NewHTTP(reg),
			Gatherer:    reg,
			OpenAPIPath: specPath,
		})
	})

	do := func(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	login := func(username string) *http.Cookie {
		rec := do(http.MethodPost, "/login", map[string]string{
			"username": username,
			"password": username + "-password",
		}, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		for _, c := range rec.Result().Cookies() {
			if c.Name == "hopecare_session" {
				return c
			}
		}
		Fail("no session cookie")
		return nil
	}

	It("serves a valid OpenAPI document", func() {
		doc, err := swagger.LoadSpec(context.Background(), specPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Paths.Len()).To(BeNumerically(">", 0))

		rec := do(http.MethodGet, swagger.SpecRoute, nil, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("routes every documented operation", func() {
		doc, err := swagger.LoadSpec(context.Background(), specPath)
		Expect(err).NotTo(HaveOccurred())

		routed := map[string]bool{}
		Expect(chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			route = strings.ReplaceAll(route, "/*/", "/")
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			routed[method+" "+route] = true
			return nil
		})).To(Succeed())

		for path, item := range doc.Paths.Map() {
			for method := range item.Operations() {
				Expect(routed).To(HaveKey(method+" "+path), "missing route %s %s", method, path)
			}
		}
	})

	It("sends anonymous visitors to the login page", func() {
		for _, path := range []string{"/", "/donations", "/inventory", "/donors"} {
			rec := do(http.MethodGet, path, nil, nil)
			Expect(rec.Code).To(Equal(http.StatusSeeOther), path)
			Expect(rec.Header().Get("Location")).To(Equal("/login"))
		}
	})

	It("keeps public endpoints open", func() {
		Expect(do(http.MethodGet, "/ping", nil, nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/login", nil, nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/metrics", nil, nil).Code).To(Equal(http.StatusOK))
	})

	It("sends assistants away from administrator resources", func() {
		cookie := login("assistant")

		rec := do(http.MethodGet, "/donors", nil, cookie)
		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/"))

		Expect(do(http.MethodGet, "/inventory", nil, cookie).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/", nil, cookie).Code).To(Equal(http.StatusOK))
	})

	It("lets administrators register donors", func() {
		cookie := login("admin")

		rec := do(http.MethodPost, "/donors", map[string]string{
			"full_name":  "Acme Foods",
			"donor_type": "CORPORATE",
		}, cookie)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = do(http.MethodPost, "/donors", map[string]string{
			"full_name":  "Nobody",
			"donor_type": "Unknown",
		}, cookie)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("reports a shortage as a 400 with the figures", func() {
		programID, err := ledger.Stock("Rice 1kg", 50, "4.50")
		Expect(err).NotTo(HaveOccurred())
		beneficiaryID, err := ledger.Beneficiary("Ana Quispe")
		Expect(err).NotTo(HaveOccurred())
		cookie := login("assistant")

		deliver := func(qty int64) *httptest.ResponseRecorder {
			return do(http.MethodPost, "/deliveries", map[string]interface{}{
				"beneficiary_id":      beneficiaryID,
				"program_id":          programID,
				"product_description": "Rice 1kg",
				"quantity":            qty,
			}, cookie)
		}

		Expect(deliver(20).Code).To(Equal(http.StatusCreated))

		rec := deliver(40)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		var body struct {
			Error struct {
				Type    string `json:"type"`
				Details struct {
					Requested int64 `json:"requested"`
					Available int64 `json:"available"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Error.Type).To(Equal("INSUFFICIENT_STOCK"))
		Expect(body.Error.Details.Requested).To(Equal(int64(40)))
		Expect(body.Error.Details.Available).To(Equal(int64(30)))
	})
})
