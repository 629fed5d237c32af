package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
	"time"
)

type testConfig struct {
	Address     string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Persistence bool   `env:"CMD_TEST_PERSISTENCE" envDefault:"true"`
}

func bindTestConfig(fs *flag.FlagSet, cfg *testConfig) {
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.BoolVar(&cfg.Persistence, "persistence", cfg.Persistence, "persistence")
}

func TestLoadLayersFlagsOverEnv(t *testing.T) {
	t.Setenv("EXPLORER_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("EXPLORER_CMD_TEST_PERSISTENCE", "false")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-address", "flag:9001"}, bindTestConfig)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("Address = %q, want flag value", cfg.Address)
	}
	if cfg.Persistence {
		t.Fatal("expected env value for persistence")
	}
}

func TestLoadWithoutBindReadsEnvOnly(t *testing.T) {
	t.Setenv("EXPLORER_CMD_TEST_ADDRESS", "env:9100")

	cfg, err := Load[testConfig](flag.NewFlagSet("test", flag.ContinueOnError), nil, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Address != "env:9100" {
		t.Fatalf("Address = %q, want %q", cfg.Address, "env:9100")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load[testConfig](nil, nil, nil); err == nil {
		t.Fatal("expected nil flag set error")
	}

	t.Setenv("EXPLORER_CMD_TEST_PERSISTENCE", "maybe")
	if _, err := Load[testConfig](flag.NewFlagSet("env", flag.ContinueOnError), nil, nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	t.Setenv("EXPLORER_CMD_TEST_PERSISTENCE", "true")

	fs := flag.NewFlagSet("flags", flag.ContinueOnError)
	fs.SetOutput(discard{})
	if _, err := Load(fs, []string{"-nope"}, bindTestConfig); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestRunRejectsMissingInputs(t *testing.T) {
	if err := Run(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := Run(context.Background(), ServiceExplorer, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunReturnsRunError(t *testing.T) {
	t.Setenv("EXPLORER_OTEL_ENDPOINT", "")

	want := errors.New("serve failed")
	err := Run(context.Background(), ServiceExplorer, func(context.Context) error { return want }, WithShutdownTimeout(time.Second))
	if !errors.Is(err, want) {
		t.Fatalf("Run() = %v, want %v", err, want)
	}
}

func TestWithShutdownTimeoutIgnoresNonPositive(t *testing.T) {
	options := runOptions{shutdownTimeout: time.Second}
	WithShutdownTimeout(0)(&options)
	if options.shutdownTimeout != time.Second {
		t.Fatalf("shutdownTimeout = %s, want %s", options.shutdownTimeout, time.Second)
	}
	WithShutdownTimeout(3 * time.Second)(&options)
	if options.shutdownTimeout != 3*time.Second {
		t.Fatalf("shutdownTimeout = %s, want %s", options.shutdownTimeout, 3*time.Second)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
