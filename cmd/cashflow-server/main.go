package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"cashflow/internal/cli"
	"cashflow/internal/httpapi"
	"cashflow/internal/log"
	"cashflow/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)
	adapter := cli.OpenStore(logger, cfg)

	svc := services.New(context.Background(), adapter, logger)
	server := httpapi.NewServer(":"+cfg.Port, svc, logger)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", log.FieldError, err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Storage close failed", log.FieldError, err)
		}
	})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening",
			log.FieldOperation, log.OpStartup,
			"addr", server.Addr,
			log.FieldBackend, cfg.DataBackend)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", log.FieldError, err)
	}
	<-done
}
