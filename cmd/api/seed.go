package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/facturaas/internal/config"
	"github.com/MrJamesThe3rd/facturaas/internal/database"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	termStore "github.com/MrJamesThe3rd/facturaas/internal/paymentterm/store"
	"github.com/MrJamesThe3rd/facturaas/internal/seed"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
	rateStore "github.com/MrJamesThe3rd/facturaas/internal/taxrate/store"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
	userStore "github.com/MrJamesThe3rd/facturaas/internal/user/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and create the administrator, demo user and default catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		return runSeed(cmd.Context(), cfg, db)
	},
}

func runSeed(ctx context.Context, cfg *config.Config, db *sqlx.DB) error {
	seeder := seed.New(
		user.NewService(userStore.New(db)),
		taxrate.NewService(rateStore.New(db)),
		paymentterm.NewService(termStore.New(db)),
	)

	opts := seed.Options{
		Admin: user.CreateParams{
			Login:    cfg.Admin.Login,
			Password: cfg.Admin.Password,
			Name:     "Administrator",
			Email:    cfg.Admin.Email,
		},
	}

	if cfg.Demo.Enabled {
		opts.Demo = &user.CreateParams{
			Login:    cfg.Demo.Login,
			Password: cfg.Demo.Password,
			Name:     "Demo User",
			Email:    cfg.Demo.Email,
		}
	}

	return seeder.Run(ctx, opts)
}
