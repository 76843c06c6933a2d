// Package app boots the leaderboard server.
package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/snakegame/leaderboard/internal/config"
	"github.com/snakegame/leaderboard/internal/db"
	"github.com/snakegame/leaderboard/internal/httpapi"
	"github.com/snakegame/leaderboard/internal/settings"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const shutdownTimeout = 10 * time.Second

// Run opens the database, migrates the schema, seeds runtime settings and
// serves the HTTP API until ctx is cancelled. A store failure at startup is
// returned to the caller and aborts the process.
func Run(ctx context.Context, cfg config.Config) error {
	if !strings.EqualFold(strings.TrimSpace(cfg.Log.Level), "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	log.WithField("dialect", db.DialectName(conn)).Info("database connected")
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := settings.Seed(ctx, conn); errSeed != nil {
		return errSeed
	}

	router := httpapi.NewRouter(conn, cfg)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	log.WithField("addr", cfg.Server.Addr).Info("leaderboard server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		log.Info("server stopped")
		return nil
	case errServe := <-serveErr:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
