// Package format serializes lineage results for display: plain text,
// JSON, markdown and bordered tables. Serialization order is
// deterministic: sources sort lexicographically, column lineage entries
// and their parents sort by (table, column).
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/lineage"
)

type tableLineageDoc struct {
	Target        *string  `json:"target"`
	Sources       []string `json:"sources"`
	StatementType string   `json:"statement_type"`
}

type columnDoc struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

type columnLineageDoc struct {
	Target  columnDoc   `json:"target"`
	Parents []columnDoc `json:"parents"`
}

// TableLineageJSON writes tl to w as indented JSON.
func TableLineageJSON(w io.Writer, tl lineage.TableLineage) error {
	doc := tableLineageDoc{
		Sources:       make([]string, 0, len(tl.Sources)),
		StatementType: string(tl.StatementType),
	}
	if tl.Target != nil {
		name := tl.Target.Name
		doc.Target = &name
	}
	for _, src := range tl.Sources.Sorted() {
		doc.Sources = append(doc.Sources, src.Name)
	}
	return encodeJSON(w, doc)
}

// TableLineageText writes tl to w in a human-readable layout.
func TableLineageText(w io.Writer, tl lineage.TableLineage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Statement Type: %s\n", tl.StatementType)
	if tl.Target != nil {
		fmt.Fprintf(&b, "Target: %s\n", tl.Target.Name)
	} else {
		b.WriteString("Target: (none - SELECT query)\n")
	}
	b.WriteString("Sources:\n")
	if len(tl.Sources) == 0 {
		b.WriteString("  (no sources)\n")
	}
	for _, src := range tl.Sources.Sorted() {
		fmt.Fprintf(&b, "  - %s\n", src.Name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ColumnLineagesJSON writes the lineage entries to w as indented JSON.
func ColumnLineagesJSON(w io.Writer, lineages []lineage.ColumnLineage) error {
	docs := make([]columnLineageDoc, 0, len(lineages))
	for _, cl := range lineages {
		doc := columnLineageDoc{
			Target:  columnDoc{Table: cl.Target.Table, Column: cl.Target.Name},
			Parents: make([]columnDoc, 0, len(cl.Parents)),
		}
		for _, p := range cl.Parents.Sorted() {
			doc.Parents = append(doc.Parents, columnDoc{Table: p.Table, Column: p.Name})
		}
		docs = append(docs, doc)
	}
	return encodeJSON(w, docs)
}

// ColumnLineagesText writes the lineage entries to w, one block per
// target column with its parents indented below it.
func ColumnLineagesText(w io.Writer, lineages []lineage.ColumnLineage) error {
	if len(lineages) == 0 {
		_, err := io.WriteString(w, "(no column lineage)\n")
		return err
	}
	var b strings.Builder
	for _, cl := range lineages {
		fmt.Fprintf(&b, "%s.%s\n", cl.Target.Table, cl.Target.Name)
		if len(cl.Parents) == 0 {
			b.WriteString("    (no parent columns - literal or constant)\n")
		}
		for _, p := range cl.Parents.Sorted() {
			fmt.Fprintf(&b, "    <- %s.%s\n", p.Table, p.Name)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ColumnLineagesMarkdown writes the lineage entries as a markdown pipe
// table.
func ColumnLineagesMarkdown(w io.Writer, lineages []lineage.ColumnLineage) error {
	if len(lineages) == 0 {
		_, err := io.WriteString(w, "(no column lineage)\n")
		return err
	}
	var b strings.Builder
	b.WriteString("| Target Table | Target Column | Parents |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, cl := range lineages {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cl.Target.Table, cl.Target.Name, joinParents(cl))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinParents(cl lineage.ColumnLineage) string {
	if len(cl.Parents) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cl.Parents))
	for _, p := range cl.Parents.Sorted() {
		parts = append(parts, p.Table+"."+p.Name)
	}
	return strings.Join(parts, ", ")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
