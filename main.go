package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"relay/backend"
	"relay/config"
	"relay/handler"
	"relay/logging"
	"relay/metrics"
)

var version = "dev"

func main() {
	config.ParseArgs()
	if config.CliArgs.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	log := logging.GetLogger()

	cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if config.CliArgs.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logging.ParseLevel(cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The client is created once and shared by every request.
	client, err := backend.NewGoogleAIClient(ctx, cfg.APIKey, cfg.Model, cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("Failed to create model client: %v", err)
	}
	defer client.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg, client.ModelName())
	defer recorder.Shutdown()

	server := &http.Server{
		Addr: cfg.ListenAddress(),
		Handler: handler.NewRouter(handler.Options{
			Generator:      client,
			Metrics:        recorder,
			AllowedOrigins: cfg.AllowedOrigins,
			Gatherer:       reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server running at http://localhost:%d (model %s)", cfg.Port, cfg.Model)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	case <-ctx.Done():
		log.Infoln("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}
}
