// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every explorer environment variable.
const EnvPrefix = "EXPLORER_"

// ParseEnv fills target from EXPLORER_* variables. Struct tags omit the
// prefix, so `env:"HTTP_ADDR"` reads EXPLORER_HTTP_ADDR.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
