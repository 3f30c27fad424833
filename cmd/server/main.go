package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/config"
	"github.com/mamadbah2/resto/internal/repository/mongodb"
	"github.com/mamadbah2/resto/internal/repository/sheets"
	"github.com/mamadbah2/resto/internal/scheduler"
	"github.com/mamadbah2/resto/internal/server/handlers"
	"github.com/mamadbah2/resto/internal/server/router"
	authsvc "github.com/mamadbah2/resto/internal/service/auth"
	dashboardsvc "github.com/mamadbah2/resto/internal/service/dashboard"
	inventorysvc "github.com/mamadbah2/resto/internal/service/inventory"
	menusvc "github.com/mamadbah2/resto/internal/service/menu"
	profitsvc "github.com/mamadbah2/resto/internal/service/profitloss"
	salessvc "github.com/mamadbah2/resto/internal/service/sales"
	suggestionsvc "github.com/mamadbah2/resto/internal/service/suggestion"
	wastesvc "github.com/mamadbah2/resto/internal/service/waste"
	"github.com/mamadbah2/resto/pkg/clients/gemini"
	"github.com/mamadbah2/resto/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, nightly export disabled")
	}

	var generator gemini.Generator
	if cfg.AI.GeminiKey != "" {
		generator = gemini.NewClient(cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		baseLogger.Info("gemini client enabled", zap.String("model", cfg.AI.GeminiModel))
	} else {
		baseLogger.Warn("gemini api key missing, dish suggestions disabled")
	}

	tokens := authsvc.NewTokenManager(cfg.Auth.JWTSecret)
	authService := authsvc.NewService(store, tokens, baseLogger.Named("svc.auth"))
	inventoryService := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	menuService := menusvc.NewService(store, baseLogger.Named("svc.menu"))
	salesRecorder := salessvc.NewRecorder(store, baseLogger.Named("svc.sales"))
	wasteService := wastesvc.NewService(store, baseLogger.Named("svc.waste"))
	profitService := profitsvc.NewService(store, baseLogger.Named("svc.profitloss"))
	dashboardService := dashboardsvc.NewService(store, baseLogger.Named("svc.dashboard"))
	suggestionService := suggestionsvc.NewService(inventoryService, menuService, generator,
		cfg.Reporting.ExpiryWindowDays, baseLogger.Named("svc.suggestion"))

	engine := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Inventory:  handlers.NewInventoryHandler(inventoryService, baseLogger.Named("handlers.inventory")),
		Menu:       handlers.NewMenuHandler(menuService, baseLogger.Named("handlers.menu")),
		Sales:      handlers.NewSalesHandler(salesRecorder, baseLogger.Named("handlers.sales")),
		Waste:      handlers.NewWasteHandler(wasteService, baseLogger.Named("handlers.waste")),
		ProfitLoss: handlers.NewProfitLossHandler(profitService, baseLogger.Named("handlers.profitloss")),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, baseLogger.Named("handlers.dashboard")),
		Suggestion: handlers.NewSuggestionHandler(suggestionService, menuService, baseLogger.Named("handlers.suggestion")),
	}, tokens, store, baseLogger.Named("router"))

	sched, err := scheduler.New(cfg.Reporting, store, profitService, exporter, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
