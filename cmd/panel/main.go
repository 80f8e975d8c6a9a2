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

	"github.com/joho/godotenv"

	"github.com/sir_venger/panel_lite/internal/app/panelhttp"
	"github.com/sir_venger/panel_lite/internal/config"
	"github.com/sir_venger/panel_lite/internal/logging"
	"github.com/sir_venger/panel_lite/internal/usecase/catalogstore"
	"github.com/sir_venger/panel_lite/internal/usecase/uploadsvc"
)

// main инициализирует панельный HTTP-сервис и обеспечивает корректное завершение по сигналу.
func main() {
	// .env подхватывается только если он есть — удобство локального запуска.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Каталоги создаются один раз на старте; без них сервису жить незачем.
	catalog, err := catalogstore.New(cfg.DataDir)
	if err != nil {
		logger.Fatalw("init catalog store", "error", err)
	}
	uploads, err := uploadsvc.New(cfg.UploadDir, cfg.MaxUploadBytes(), logger)
	if err != nil {
		logger.Fatalw("init upload service", "error", err)
	}

	// Настраиваем фоновый GC по удалению временных файлов оборванных загрузок.
	stopGC := uploads.StartGC(
		time.Duration(cfg.GCTTLHours)*time.Hour,
		time.Duration(cfg.GCIntervalMin)*time.Minute,
	)
	defer stopGC()

	handler := panelhttp.NewServer(panelhttp.Deps{
		Catalog:   catalog,
		Uploads:   uploads,
		Log:       logger,
		StaticDir: cfg.StaticDir,
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("shutdown error", "error", err)
		}
	}()

	logger.Infow("panel listening",
		"addr", cfg.ListenAddr,
		"data_dir", cfg.DataDir,
		"upload_dir", cfg.UploadDir,
		"max_upload_mb", cfg.MaxUploadMB,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server failed", "error", err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("final shutdown error", "error", err)
	}
}
