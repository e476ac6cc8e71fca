package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqllineage/pkg/format"
	"github.com/leapstack-labs/sqllineage/pkg/lineage"
	"github.com/spf13/cobra"
)

// NewTableCommand creates the table lineage command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <statement.json>",
		Short: "Show table-level lineage for a resolved statement",
		Long: `Read a resolved statement (the JSON tree produced by a SQL analyzer)
and print the tables it reads from and writes to, plus its statement type.`,
		Example: `  # Table lineage from a file
  sqllineage table stmt.json

  # Read the statement from stdin, print JSON
  analyzer --sql query.sql | sqllineage table - --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, args[0])
		},
	}
}

func runTable(cmd *cobra.Command, path string) error {
	stmt, err := readStatement(cmd, path)
	if err != nil {
		return err
	}

	tl := lineage.ExtractTableLineage(stmt)
	w := cmd.OutOrStdout()
	switch cfg := configFrom(cmd); cfg.Output {
	case "json":
		return format.TableLineageJSON(w, tl)
	case "table":
		return format.SourcesTable(w, tl)
	case "text", "md":
		return format.TableLineageText(w, tl)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Output)
	}
}
