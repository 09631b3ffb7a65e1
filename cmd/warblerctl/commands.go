package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/warbler/backend/internal/database"
	"github.com/anonto42/warbler/backend/internal/models"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/services"
	"github.com/anonto42/warbler/backend/pkg/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const seedPassword = "password"

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "warblerctl",
		Short:        "Warbler administration tool",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "database URL (defaults to $DATABASE_URL)")

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the database schema",
	}
	dbCmd.AddCommand(
		schemaCmd(cfg, "create", "Create all tables", database.Migrate),
		schemaCmd(cfg, "drop", "Drop all tables", database.DropAll),
		schemaCmd(cfg, "reset", "Drop and recreate all tables", database.Reset),
	)

	rootCmd.AddCommand(dbCmd, seedCmd(cfg))
	return rootCmd
}

func schemaCmd(cfg *config.Config, use, short string, run func(*gorm.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(db *gorm.DB) error {
				if err := run(db); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "db %s: done\n", use)
				return nil
			})
		},
	}
}

func seedCmd(cfg *config.Config) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample users that follow each other in a ring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--users must be at least 1")
			}
			return withDB(cfg, func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				users, err := seed(cmd.Context(), db, count)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users (password %q)\n", len(users), seedPassword)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "users", 5, "number of users to create")
	return cmd
}

// seed signs up count users under the lowest free userN names and makes each
// one follow the next.
func seed(ctx context.Context, db *gorm.DB, count int) ([]*models.User, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	accounts := services.NewAccountService(userRepo)

	users := make([]*models.User, 0, count)
	n := 0
	for len(users) < count {
		n++
		username := fmt.Sprintf("user%d", n)
		email := fmt.Sprintf("user%d@example.com", n)
		free, err := available(ctx, userRepo, username, email)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}

		user, err := accounts.Signup(ctx, models.SignupRequest{
			Username: username,
			Email:    email,
			Password: seedPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("signup %s: %w", username, err)
		}
		users = append(users, user)
	}

	for i := range users {
		next := users[(i+1)%len(users)]
		if next.ID == users[i].ID {
			continue
		}
		if err := followRepo.Follow(ctx, users[i].ID, next.ID); err != nil {
			return nil, fmt.Errorf("follow: %w", err)
		}
	}
	return users, nil
}

// available reports whether neither username nor email is taken.
func available(ctx context.Context, users repositories.UserRepository, username, email string) (bool, error) {
	if _, err := users.GetUserByUsername(ctx, username); !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := users.GetUserByEmail(ctx, email); !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, nil
}

func withDB(cfg *config.Config, fn func(*gorm.DB) error) error {
	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()
	return fn(db.Conn)
}
