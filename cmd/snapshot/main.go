// Command snapshot fetches the catalog once and writes the rendered panel.
//
//	snapshot -format html -out panel.html
//	snapshot -format json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imrulkk89/ebiw-grafana-ui/internal/app"
	"github.com/imrulkk89/ebiw-grafana-ui/internal/config"
	pkgconfig "github.com/imrulkk89/ebiw-grafana-ui/pkg/config"
	"github.com/imrulkk89/ebiw-grafana-ui/pkg/logger"
)

func main() {
	format := flag.String("format", app.FormatHTML, "output format: html or json")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if err := run(*format, *out); err != nil {
		slog.Error("snapshot failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(format, out string) error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout carries only the render.
	log := logger.NewWithWriter(app.ServiceName, cfg.LogLevel, cfg.LogFormat, os.Stderr)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}
	defer func() { _ = application.Shutdown() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := application.Snapshot(ctx, format, w); err != nil {
		return err
	}

	log.Info("snapshot written",
		slog.String("format", format),
		slog.String("state", string(application.Panel().State())),
	)
	return nil
}
