package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/skinstore/internal/authclient"
	"github.com/Skotchmaster/skinstore/internal/cart"
	"github.com/Skotchmaster/skinstore/internal/catalog"
	"github.com/Skotchmaster/skinstore/internal/config"
	"github.com/Skotchmaster/skinstore/internal/handlers"
	"github.com/Skotchmaster/skinstore/internal/httpserver"
	"github.com/Skotchmaster/skinstore/internal/logging"
	"github.com/Skotchmaster/skinstore/internal/session"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	ctx := logging.IntoContext(context.Background(), logger)

	if configuration.AUTH_API_URL == "" {
		log.Fatal("AUTH_API_URL is required")
	}

	store, err := session.Open(configuration.SESSION_DB_PATH)
	if err != nil {
		log.Fatalf("cannot open session store: %v", err)
	}

	client := authclient.New(configuration.AUTH_API_URL)
	manager := session.NewManager(client, store)

	// Re-establish any remembered session before serving anything that
	// shows a balance.
	if err := manager.Bootstrap(ctx); err != nil {
		logger.Warn("session_bootstrap_failed", "error", err)
	}

	items := catalog.Default()
	if configuration.CATALOG_PATH != "" {
		items, err = catalog.Load(configuration.CATALOG_PATH)
		if err != nil {
			log.Fatalf("cannot load catalog: %v", err)
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		CatalogHandler: &handlers.CatalogHandler{Items: items},
		CartHandler:    &handlers.CartHandler{Ledger: cart.NewLedger(), Catalog: items},
		AuthHandler:    &handlers.AuthHandler{Manager: manager},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := store.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("session db close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
