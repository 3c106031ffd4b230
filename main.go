package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/garten/app"
	"github.com/deevus/garten/config"
	"github.com/deevus/garten/internal"
	"github.com/deevus/garten/internal/fetch"
	"github.com/deevus/garten/internal/logging"
	"github.com/deevus/garten/internal/telemetry"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	urlFlag := flag.String("url", "", "address to fetch, overrides the configured addresses")
	stepFlag := flag.Int("step", -1, "counter step, overrides counter_step")
	flag.Parse()

	if err := run(*configFlag, *urlFlag, *stepFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, address string, step int) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Addresses = []string{address}
	}
	if step >= 0 {
		cfg.CounterStep = step
	}

	logger, logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()
	tp, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	logger.Info("starting",
		"addresses", cfg.Addresses,
		"counter_step", cfg.CounterStep,
		"tracing", tp.Enabled())

	client := fetch.NewClient(fetch.ClientParams{
		Doer:   &http.Client{Timeout: cfg.Timeout.Duration},
		Tracer: tp.Tracer(),
		Logger: logger,
	})

	root := app.New(app.Params{
		Title:       cfg.Title,
		Services:    internal.NewServices(client, nil),
		Addresses:   cfg.Addresses,
		CounterStep: cfg.CounterStep,
		Logger:      logger,
	})

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		return fmt.Errorf("creating terminal app: %w", err)
	}
	root.SetPostEvent(vxApp.PostEvent)

	runErr := vxApp.Run(root)
	if err := root.Close(); err != nil {
		logger.Warn("closing app", "error", err)
	}
	if runErr != nil {
		return fmt.Errorf("running terminal app: %w", runErr)
	}
	logger.Info("exiting")
	return nil
}
