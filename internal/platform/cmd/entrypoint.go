// Package cmd holds the shared startup sequence for explorer commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/explorer/internal/platform/config"
	"github.com/louisbranch/explorer/internal/platform/otel"
	"github.com/louisbranch/explorer/internal/platform/timeouts"
)

// ServiceExplorer names the explorer web service in telemetry and logs.
const ServiceExplorer = "explorer"

// Load reads T from the environment, lets bind register flags whose defaults
// are the environment values, and parses args. Flags win over the
// environment.
func Load[T any](fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) (T, error) {
	var cfg T
	if fs == nil {
		return cfg, errors.New("flag set is required")
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if bind != nil {
		bind(fs, &cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type runOptions struct {
	shutdownTimeout time.Duration
}

// Option adjusts Run.
type Option func(*runOptions)

// WithShutdownTimeout bounds the span flush on exit.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *runOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// Run installs tracing for service, calls fn, and flushes pending spans once
// fn returns.
func Run(ctx context.Context, service string, fn func(context.Context) error, opts ...Option) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if fn == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	options := runOptions{shutdownTimeout: timeouts.OTelShutdown}
	for _, opt := range opts {
		opt(&options)
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), options.shutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()

	log.Printf("%s starting", service)
	err = fn(ctx)
	log.Printf("%s stopped", service)
	return err
}
