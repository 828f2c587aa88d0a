package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/cli"
	apphttp "github.com/Glindemberg/Controle-Finaceiro-v2/internal/http"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/services"
)

func main() {
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel)

	store := cli.InitStore(logger, cfg)
	defer store.Close()

	ctx, stop := cli.NotifyShutdown()
	defer stop()

	ledger, err := services.NewLedger(ctx, store)
	if err != nil {
		logger.Error("Failed to load transactions", log.FieldError, err)
		os.Exit(1)
	}
	cards, err := services.NewCardService(ctx, store, ledger)
	if err != nil {
		logger.Error("Failed to load credit cards", log.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, cards)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting financeiro server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
