package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	"github.com/MrJamesThe3rd/facturaas/internal/client/csvimport"
	clientStore "github.com/MrJamesThe3rd/facturaas/internal/client/store"
	"github.com/MrJamesThe3rd/facturaas/internal/database"
	apiHttp "github.com/MrJamesThe3rd/facturaas/internal/http"
	authHandler "github.com/MrJamesThe3rd/facturaas/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/facturaas/internal/http/client"
	invoiceHandler "github.com/MrJamesThe3rd/facturaas/internal/http/invoice"
	paymentTermHandler "github.com/MrJamesThe3rd/facturaas/internal/http/paymentterm"
	taxRateHandler "github.com/MrJamesThe3rd/facturaas/internal/http/taxrate"
	userHandler "github.com/MrJamesThe3rd/facturaas/internal/http/user"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/facturaas/internal/invoice/store"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	termStore "github.com/MrJamesThe3rd/facturaas/internal/paymentterm/store"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
	rateStore "github.com/MrJamesThe3rd/facturaas/internal/taxrate/store"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
	userStore "github.com/MrJamesThe3rd/facturaas/internal/user/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	if cfg.App.SeedOnStart {
		if err := runSeed(ctx, cfg, db); err != nil {
			return err
		}
	}

	var (
		tokens             = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		userService        = user.NewService(userStore.New(db))
		taxRateService     = taxrate.NewService(rateStore.New(db))
		paymentTermService = paymentterm.NewService(termStore.New(db))
		clientService      = client.NewService(clientStore.New(db))
		invoiceService     = invoice.NewService(invoiceStore.New(db))
	)

	router := apiHttp.New(apiHttp.Handlers{
		Auth:         authHandler.NewHandler(userService, tokens),
		Users:        userHandler.NewHandler(userService),
		TaxRates:     taxRateHandler.NewHandler(taxRateService),
		PaymentTerms: paymentTermHandler.NewHandler(paymentTermService),
		Clients:      clientHandler.NewHandler(clientService, csvimport.New(), cfg.Server.MaxUploadMiB<<20),
		Invoices:     invoiceHandler.NewHandler(invoiceService),
	}, authHandler.Middleware(tokens, userService), cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", cfg.App.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
