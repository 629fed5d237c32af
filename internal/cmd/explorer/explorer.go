// Package explorer parses explorer command flags and launches the web service.
package explorer

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/explorer/internal/platform/cmd"
	explorerservice "github.com/louisbranch/explorer/internal/services/explorer"
)

// Config holds the explorer command configuration. Environment names carry
// the EXPLORER_ prefix.
type Config struct {
	HTTPAddr         string `env:"HTTP_ADDR" envDefault:"localhost:8090"`
	Persistence      bool   `env:"PERSISTENCE" envDefault:"true"`
	CodeSampleHidden bool   `env:"CODE_SAMPLE_HIDDEN" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.Load(fs, args, bindFlags)
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.Persistence, "persistence", cfg.Persistence, "Offer save and delete controls")
	fs.BoolVar(&cfg.CodeSampleHidden, "code-sample-hidden", cfg.CodeSampleHidden, "Start with the code sample collapsed")
}

// Run starts the explorer server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.Run(ctx, entrypoint.ServiceExplorer, func(ctx context.Context) error {
		server, err := explorerservice.NewServer(ctx, explorerservice.Config{
			HTTPAddr:         cfg.HTTPAddr,
			Persistence:      cfg.Persistence,
			CodeSampleHidden: cfg.CodeSampleHidden,
		})
		if err != nil {
			return fmt.Errorf("init explorer server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve explorer: %w", err)
		}
		return nil
	})
}
