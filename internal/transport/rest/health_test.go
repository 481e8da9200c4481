package rest_test

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"net/http"
	"net/http/httptest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/frahmantamala/hopecare/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HealthHandler", func() {
	var (
		mock    sqlmock.Sqlmock
		handler *rest.HealthHandler
	)

	BeforeEach(func() {
		db, m, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = db.Close() })
		mock = m
		handler = rest.NewHealthHandler(db)
	})

	health := func() (*httptest.ResponseRecorder, rest.HealthResponse) {
		rec := httptest.NewRecorder()
		handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		var body rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return rec, body
	}

	It("answers ping without touching the database", func() {
		rec := httptest.NewRecorder()
		handler.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("is healthy when the database answers", func() {
		mock.ExpectPing()
		rec, body := health()
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(body.Status).To(Equal(rest.HealthHealthy))
		Expect(body.Components).To(HaveKey("postgres"))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("is unavailable when the database does not answer", func() {
		mock.ExpectPing().WillReturnError(goerrors.New("connection refused"))
		rec, body := health()
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(body.Components["postgres"].Status).To(Equal(rest.HealthUnhealthy))
		Expect(body.Components["postgres"].Message).To(ContainSubstring("connection refused"))
	})

	It("reports extra checks by name", func() {
		mock.ExpectPing()
		handler.AddCheck("redis", func(context.Context) error { return goerrors.New("redis down") })
		rec, body := health()
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(body.Components["postgres"].Status).To(Equal(rest.HealthHealthy))
		Expect(body.Components["redis"].Status).To(Equal(rest.HealthUnhealthy))
	})
})
