package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/frahmantamala/hopecare/internal"
	userDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/user"
	"github.com/frahmantamala/hopecare/internal/user"
	userPostgres "github.com/frahmantamala/hopecare/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo user.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{})).To(Succeed())

		repo = userPostgres.NewUserRepository(db)
		ctx = context.Background()

		Expect(repo.Create(ctx, &userDatamodel.User{
			Username:     "Admin",
			FullName:     "System Administrator",
			PasswordHash: "$2a$10$hash",
			Role:         "Administrator",
			IsActive:     true,
		})).To(Succeed())
	})

	It("finds users by username without regard to case", func() {
		u, err := repo.GetByUsername(ctx, "aDmIn")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.FullName).To(Equal("System Administrator"))
	})

	It("returns the not found sentinel for unknown users", func() {
		_, err := repo.GetByUsername(ctx, "ghost")
		Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())

		_, err = repo.GetByID(ctx, 999)
		Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
	})

	It("rejects duplicate usernames as a conflict", func() {
		err := repo.Create(ctx, &userDatamodel.User{
			Username:     "Admin",
			FullName:     "Someone Else",
			PasswordHash: "$2a$10$hash",
			Role:         "Assistant",
			IsActive:     true,
		})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
	})

	It("updates the last login timestamp", func() {
		u, err := repo.GetByUsername(ctx, "admin")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.LastLogin).To(BeNil())

		Expect(repo.TouchLastLogin(ctx, u.ID)).To(Succeed())

		u, err = repo.GetByID(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.LastLogin).NotTo(BeNil())
	})
})
