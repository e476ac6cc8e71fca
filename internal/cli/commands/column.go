package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqllineage/pkg/format"
	"github.com/leapstack-labs/sqllineage/pkg/lineage"
	"github.com/spf13/cobra"
)

// NewColumnCommand creates the column lineage command.
func NewColumnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "column <statement.json>",
		Short: "Show column-level lineage for a resolved statement",
		Long: `Read a resolved statement (the JSON tree produced by a SQL analyzer)
and print, for every output or written column, the terminal source
columns it derives from.`,
		Example: `  # Column lineage as a table
  sqllineage column stmt.json

  # Column lineage as JSON, statement on stdin
  analyzer --sql query.sql | sqllineage column - --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumn(cmd, args[0])
		},
	}
}

func runColumn(cmd *cobra.Command, path string) error {
	stmt, err := readStatement(cmd, path)
	if err != nil {
		return err
	}

	lineages := lineage.ExtractColumnLineage(stmt)
	w := cmd.OutOrStdout()
	switch cfg := configFrom(cmd); cfg.Output {
	case "json":
		return format.ColumnLineagesJSON(w, lineages)
	case "table":
		return format.ColumnLineagesTable(w, lineages)
	case "text":
		return format.ColumnLineagesText(w, lineages)
	case "md", "markdown":
		return format.ColumnLineagesMarkdown(w, lineages)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Output)
	}
}
