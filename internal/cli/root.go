// Package cli provides the command-line interface for sqllineage.
package cli

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqllineage/internal/cli/commands"
	"github.com/leapstack-labs/sqllineage/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqllineage",
		Short: "Data lineage for resolved SQL statements",
		Long: `sqllineage computes table- and column-level data lineage for SQL
statements that have been semantically resolved by an external analyzer.

It reads the analyzer's resolved statement tree as JSON and reports which
tables the statement reads and writes, and which terminal source columns
every output column ultimately derives from.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqllineage.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|table|json|md)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "table", "json", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewTableCommand())
	rootCmd.AddCommand(commands.NewColumnCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))

	return rootCmd
}

// Execute runs the root command and returns its exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}

// init keeps the default logger quiet until the root command configures it.
func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}
