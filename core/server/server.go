package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayflow/core/config"
	"dayflow/core/logger"
	"dayflow/core/middleware"
	"dayflow/modules/schedule"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
)

// Run loads configuration, wires the modules and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel, cfg.Server.Pretty)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.NewMiddleware()
	mw.Setup(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	repo := schedule.Init(e, cfg)

	// Retention sweep: drop finished items past the retention horizon so the
	// working set does not grow without bound.
	sweeper := cron.New()
	_, err = sweeper.AddFunc(cfg.Retention.Cron, func() {
		cutoff := time.Now().AddDate(0, 0, -cfg.Retention.Days)
		removed, pruneErr := repo.PruneBefore(context.Background(), cutoff)
		if pruneErr != nil {
			logger.Error("retention sweep failed", pruneErr)
			return
		}
		logger.Info("retention sweep", "removed", removed, "cutoff", cutoff)
	})
	if err != nil {
		return fmt.Errorf("schedule retention sweep: %w", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("server starting", "addr", addr)
		if serveErr := e.Start(addr); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("server stopped", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
