package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/aburakaktas/host-website-flyer-generator/api"
	"github.com/aburakaktas/host-website-flyer-generator/config"
	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/domain/share"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/cache"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/db"
	appLogger "github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/pdf"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/qrcode"
)

func main() {
	// Load configuration from environment variables
	cfg := config.LoadConfig()

	// Initialize logger based on environment
	isProduction := cfg.LogLevel == "INFO"
	appLogger.Initialize(isProduction)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataDBPath:      cfg.DatabaseURL,
			constant.DataAssetDir:    cfg.AssetDir,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	// Durable share tier. A failed open is not fatal: the store degrades to
	// its in-process memory tier, trading durability for availability.
	var primary share.Backend
	repository, err := db.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		appLogger.Warn(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.DatabaseURL,
			},
		})
	} else {
		primary = repository
		defer repository.Close()
	}

	shareCache := cache.NewLRU(cfg.CacheSize)
	shareStore := share.NewStore(primary, share.NewMemoryBackend(), shareCache)
	flyerService := flyer.NewService(nil, qrcode.NewEncoder())
	composer := pdf.NewCompositor()

	// Create API handler and router
	handler := api.NewHandler(flyerService, shareStore, composer, cfg.AssetDir)
	router := api.NewRouter(handler)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
