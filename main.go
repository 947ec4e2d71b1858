package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"datalab/internal/config"
	"datalab/internal/container"
	"datalab/internal/logging"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	restore := logging.Install(logging.New(cfg.Log.Level))
	defer restore()

	c, err := container.New(cfg, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := c.MenuDriver(os.Stdin)
	zap.L().Debug("Starting interactive session",
		zap.String("session", driver.SessionID()),
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("coercion_policy", string(cfg.Coercion.Policy)))

	if err := driver.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
