package format

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqllineage/pkg/lineage"
)

// ColumnLineagesTable renders the lineage entries as a bordered table.
func ColumnLineagesTable(w io.Writer, lineages []lineage.ColumnLineage) error {
	if len(lineages) == 0 {
		_, err := fmt.Fprintln(w, "(no column lineage)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target Table", "Target Column", "Parents"})
	for _, cl := range lineages {
		t.AppendRow(table.Row{cl.Target.Table, cl.Target.Name, joinParents(cl)})
	}
	t.Render()
	_, err := fmt.Fprintf(w, "(%d columns)\n", len(lineages))
	return err
}

// SourcesTable renders a table lineage result as a bordered table, one
// row per source.
func SourcesTable(w io.Writer, tl lineage.TableLineage) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Statement", "Target", "Source"})

	target := "(none)"
	if tl.Target != nil {
		target = tl.Target.Name
	}
	sources := tl.Sources.Sorted()
	if len(sources) == 0 {
		t.AppendRow(table.Row{string(tl.StatementType), target, "(no sources)"})
	}
	for _, src := range sources {
		t.AppendRow(table.Row{string(tl.StatementType), target, src.Name})
	}
	t.Render()
	return nil
}
