package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/logger"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands",
}

var newUser user.ProvisionDTO

var addUserCmd = &cobra.Command{
	Use:   "add",
	Short: "Provision a user",
	Long:  `Provision an Administrator or Assistant account. The password is stored as a bcrypt hash.`,
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

		svc := newLedgerServices(cfg, gdb, nil, nil, nil, logger.LoggerWrapper())
		u, err := svc.Users.Provision(context.Background(), newUser)
		if err != nil {
			log.Fatalf("failed to provision user: %v", err)
		}
		fmt.Printf("Provisioned %s (%s) with id %d\n", u.Username, u.Role, u.ID)
	},
}

func init() {
	addUserCmd.Flags().StringVar(&newUser.Username, "username", "", "Login name")
	addUserCmd.Flags().StringVar(&newUser.FullName, "full-name", "", "Display name")
	addUserCmd.Flags().StringVar(&newUser.Email, "email", "", "Email address")
	addUserCmd.Flags().StringVar(&newUser.Password, "password", "", "Initial password")
	addUserCmd.Flags().StringVar(&newUser.Role, "role", "Assistant", "Administrator or Assistant")
	_ = addUserCmd.MarkFlagRequired("username")
	_ = addUserCmd.MarkFlagRequired("password")

	userCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(userCmd)
}
