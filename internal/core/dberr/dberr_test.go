package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/frahmantamala/hopecare/internal/core/dberr"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestDBErr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DB Errors Suite")
}

var _ = Describe("classification", func() {
	It("recognises unique violations from gorm and postgres", func() {
		Expect(dberr.IsUniqueViolation(gorm.ErrDuplicatedKey)).To(BeTrue())
		Expect(dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}))).To(BeTrue())
		Expect(dberr.IsUniqueViolation(errors.New("boom"))).To(BeFalse())
		Expect(dberr.IsUniqueViolation(nil)).To(BeFalse())
	})

	It("treats serialization failures and deadlocks as retryable", func() {
		Expect(dberr.IsRetryable(&pgconn.PgError{Code: "40001"})).To(BeTrue())
		Expect(dberr.IsRetryable(&pgconn.PgError{Code: "40P01"})).To(BeTrue())
		Expect(dberr.IsRetryable(&pgconn.PgError{Code: "23505"})).To(BeFalse())
		Expect(dberr.IsRetryable(errors.New("connection refused"))).To(BeFalse())
	})
})
