package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/spendwise/internal/budget/store"
	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/database"
	"github.com/MrJamesThe3rd/spendwise/internal/export"
	spendwiseHttp "github.com/MrJamesThe3rd/spendwise/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/spendwise/internal/http/analytics"
	budgetHandler "github.com/MrJamesThe3rd/spendwise/internal/http/budget"
	exportHandler "github.com/MrJamesThe3rd/spendwise/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendwise/internal/http/importcsv"
	ruleHandler "github.com/MrJamesThe3rd/spendwise/internal/http/rule"
	seedHandler "github.com/MrJamesThe3rd/spendwise/internal/http/seed"
	txHandler "github.com/MrJamesThe3rd/spendwise/internal/http/transaction"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
	"github.com/MrJamesThe3rd/spendwise/internal/rule"
	ruleStore "github.com/MrJamesThe3rd/spendwise/internal/rule/store"
	"github.com/MrJamesThe3rd/spendwise/internal/seed"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/spendwise/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup has finished by the
// time it returns.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     cfg.App.Name,
		})
		if err != nil {
			slog.Error("failed to initialize sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("run migrations: %w", err)
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db))
		ruleService        = rule.NewService(ruleStore.New(db))
		importService      = importer.NewService(ruleService)
		exportService      = export.NewService(transactionService)
		seedService        = seed.NewService(transactionService, budgetService)
		analyticsService   = analytics.NewService(transactionService, budgetService, cfg.Cache.TTL, cfg.Cache.Cleanup)
	)

	router := spendwiseHttp.New(
		spendwiseHttp.Options{
			CORSOrigins: cfg.CORS.Origins,
			RateLimit:   rate.Limit(cfg.RateLimit.RPS),
			Burst:       cfg.RateLimit.Burst,
		},
		spendwiseHttp.Handlers{
			Transactions: txHandler.NewHandler(transactionService),
			Budgets:      budgetHandler.NewHandler(budgetService),
			Analytics:    analyticsHandler.NewHandler(analyticsService),
			Import:       importHandler.NewHandler(importService, transactionService),
			Rules:        ruleHandler.NewHandler(ruleService),
			Export:       exportHandler.NewHandler(exportService),
			Seed:         seedHandler.NewHandler(seedService),
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
