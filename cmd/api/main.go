package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/lehrbaum/firefly/internal/amount"
	"github.com/lehrbaum/firefly/internal/config"
	fireflyHttp "github.com/lehrbaum/firefly/internal/http"
	amountHandler "github.com/lehrbaum/firefly/internal/http/amount"
	localeHandler "github.com/lehrbaum/firefly/internal/http/locale"
	statementHandler "github.com/lehrbaum/firefly/internal/http/statement"
	"github.com/lehrbaum/firefly/internal/locale"
	"github.com/lehrbaum/firefly/internal/statement"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	table, err := newLocaleTable(cfg)
	if err != nil {
		slog.Error("failed to build locale table", "error", err)
		os.Exit(1)
	}

	var (
		amountService = amount.NewService(table, cfg.Mode())
		parser        = statement.NewParser(amountService)
	)

	var (
		amountH    = amountHandler.NewHandler(amountService, table)
		localeH    = localeHandler.NewHandler(table)
		statementH = statementHandler.NewHandler(parser, cfg.Server.MaxUploadBytes)
	)

	router := fireflyHttp.New(fireflyHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthSecret:     cfg.Server.AuthSecret,
	}, amountH, localeH, statementH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server",
		"name", cfg.App.Name,
		"port", srv.Addr,
		"mode", cfg.Mode(),
		"default_locale", table.Default(),
		"auth", cfg.AuthEnabled(),
	)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLocaleTable(cfg *config.Config) (*locale.Table, error) {
	var (
		table *locale.Table
		err   error
	)

	if cfg.Amount.DefaultLocale != "" {
		table, err = locale.NewTable(cfg.Amount.DefaultLocale)
	} else {
		table, err = locale.NewSystemTable()
	}

	if err != nil {
		return nil, err
	}

	if cfg.Amount.OverridesFile == "" {
		return table, nil
	}

	overrides, err := locale.LoadOverrides(cfg.Amount.OverridesFile)
	if err != nil {
		return nil, err
	}

	return table.WithOverrides(overrides)
}
