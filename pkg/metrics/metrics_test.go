package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/hopecare/pkg/metrics"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Metrics", func() {
	var reg *prometheus.Registry

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
	})

	It("labels requests by route pattern", func() {
		m := metrics.NewHTTP(reg)
		router := chi.NewRouter()
		router.Use(m.Instrument)
		router.Get("/donors/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		router.Get("/metrics", metrics.Handler(reg).ServeHTTP)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/donors/7", nil))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/donors/8", nil))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Body.String()).To(ContainSubstring(`hopecare_http_requests_total{method="GET",route="/donors/{id}",status="204"} 2`))
	})

	It("counts ledger outcomes", func() {
		l := metrics.NewLedger(reg)
		l.DonationRecorded("PRODUCT")
		l.DeliveryOutcome("completed")
		l.DeliveryOutcome("insufficient_stock")
		l.DeliveryOutcome("insufficient_stock")

		n, err := testutil.GatherAndCount(reg, "hopecare_deliveries_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
	})

	It("tolerates a nil ledger", func() {
		var l *metrics.Ledger
		Expect(func() { l.DeliveryRetried() }).NotTo(Panic())
	})
})
