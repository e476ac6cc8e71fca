// Package commands implements the sqllineage subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/sqllineage/internal/cli/config"
	"github.com/leapstack-labs/sqllineage/pkg/resolved"
	"github.com/spf13/cobra"
)

type configKey struct{}

// WithConfig stores the loaded configuration in ctx for commands to read.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration stored in the command context,
// falling back to defaults when the root command did not run.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{Output: config.DefaultOutput}
}

// readStatement decodes a resolved statement from the given path, or from
// stdin when the path is "-".
func readStatement(cmd *cobra.Command, path string) (resolved.Statement, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open statement file: %w", err)
		}
		defer f.Close()
		r = f
	}

	stmt, err := resolved.DecodeStatement(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode resolved statement: %w", err)
	}
	if stmt == nil {
		return nil, fmt.Errorf("no statement in %s", path)
	}
	return stmt, nil
}
