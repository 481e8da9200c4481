package cmd

import (
	"context"
	goerrors "errors"
	"fmt"
	"log"

	"github.com/frahmantamala/hopecare/internal"
	currencyDatamodel "github.com/frahmantamala/hopecare/internal/core/datamodel/currency"
	"github.com/frahmantamala/hopecare/internal/currency"
	"github.com/frahmantamala/hopecare/internal/program"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the users, currencies and a sample program for development and testing.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()
		gdb, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := clearLedger(gdb); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared ledger data")
		}

		svc := newLedgerServices(cfg, gdb, nil, nil, nil, logger.LoggerWrapper())
		if err := seed(context.Background(), svc); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}

func clearLedger(db *gorm.DB) error {
	return db.Exec("TRUNCATE deliveries, donations, programs, beneficiaries, donors RESTART IDENTITY CASCADE").Error
}

func seed(ctx context.Context, svc *ledgerServices) error {
	for _, u := range []user.ProvisionDTO{
		{Username: "admin", FullName: "HopeCare Administrator", Email: "admin@hopecare.org", Password: seedPassword, Role: string(user.RoleAdministrator)},
		{Username: "assistant", FullName: "HopeCare Assistant", Email: "assistant@hopecare.org", Password: seedPassword, Role: string(user.RoleAssistant)},
	} {
		_, err := svc.Users.GetByUsername(ctx, u.Username)
		if err == nil {
			fmt.Println("user already exists:", u.Username)
			continue
		}
		if !goerrors.Is(err, internal.ErrUserNotFound) {
			return err
		}
		if _, err := svc.Users.Provision(ctx, u); err != nil {
			return fmt.Errorf("provision %s: %w", u.Username, err)
		}
		fmt.Println("Seeded user:", u.Username)
	}

	for _, c := range []*currencyDatamodel.Currency{
		{Code: "PEN", Name: "Peruvian Sol", Symbol: "S/", RateToBase: decimal.NewFromInt(1), IsActive: true},
		{Code: "USD", Name: "US Dollar", Symbol: "$", RateToBase: decimal.RequireFromString("3.75"), IsActive: true},
		{Code: "EUR", Name: "Euro", Symbol: "€", RateToBase: decimal.RequireFromString("4.05"), IsActive: true},
	} {
		_, err := svc.CurrencyRepo.GetActiveByCode(ctx, c.Code)
		if err == nil {
			continue
		}
		if !goerrors.Is(err, currency.ErrNotFound) {
			return err
		}
		if err := svc.CurrencyRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("currency %s: %w", c.Code, err)
		}
		fmt.Println("Seeded currency:", c.Code)
	}

	programs, err := svc.Programs.ListPrograms(ctx)
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		p, err := svc.Programs.CreateProgram(ctx, program.CreateProgramDTO{
			Name:        "Canasta Familiar",
			Description: "Monthly food basket for registered families",
			ProgramType: "FOOD",
		})
		if err != nil {
			return err
		}
		fmt.Println("Seeded program:", p.Code)
	}
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "hopecare-password", "Password for the seeded users")
}
