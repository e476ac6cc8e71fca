// Package resolved defines the resolved-AST contract consumed by the
// lineage analyzers in pkg/lineage.
//
// A resolved statement is the output of an external SQL semantic analyzer
// bound to a schema catalog: a typed tree in which every column reference
// has been bound to a concrete producing column with a stable identifier.
// This package does not parse, type-check or execute anything; it only
// models the tree and ships it across process boundaries via a JSON codec.
//
// Node kinds are closed sets grouped under three interfaces: Statement,
// Scan and Expr. Each scan carries the column list it produces; each
// expression carries its resolved type.
package resolved

import "strconv"

// Column is a resolved column produced by a scan or computed by an
// expression. The ID is unique within one analyzed statement: two columns
// with the same table and name but different IDs are distinct columns at
// different pipeline stages.
type Column struct {
	ID    int    `json:"id"`
	Table string `json:"table,omitempty"` // producing table; empty for purely computed columns
	Name  string `json:"name"`            // may be dotted for synthesized struct field paths
	Type  Type   `json:"type,omitempty"`
}

// Key returns the identity of the column within one statement, in the form
// "table.name#id".
func (c Column) Key() string {
	return c.Table + "." + c.Name + "#" + strconv.Itoa(c.ID)
}

// Type describes a resolved column or expression type. A type is either a
// scalar (Name holds the type name) or a struct (Fields holds the ordered
// field list, recursively).
type Type struct {
	Name   string        `json:"name,omitempty"`
	Fields []StructField `json:"fields,omitempty"`
}

// IsStruct reports whether the type is a struct type.
func (t Type) IsStruct() bool { return len(t.Fields) > 0 }

// StructField is a single named field of a struct type.
type StructField struct {
	Name string `json:"name"`
	Type Type   `json:"type,omitempty"`
}

// OutputColumn pairs a statement output column with its user-visible name.
type OutputColumn struct {
	Name   string `json:"name"`
	Column Column `json:"column"`
}

// ComputedColumn assigns the result of an expression to a column.
type ComputedColumn struct {
	Column Column `json:"column"`
	Expr   Expr   `json:"expr"`
}

// UpdateItem is a single SET assignment of an UPDATE statement or of a
// MERGE matched-update action.
type UpdateItem struct {
	Target Column `json:"target"`
	Value  Expr   `json:"value"`
}

// WithEntry is one named CTE definition of a WITH clause.
type WithEntry struct {
	Name     string `json:"name"`
	Subquery Scan   `json:"subquery"`
}

// SetOperationItem is one input branch of a set operation, together with
// the columns the branch contributes positionally to the operation output.
type SetOperationItem struct {
	Scan          Scan     `json:"scan"`
	OutputColumns []Column `json:"output_columns"`
}

// MergeAction identifies the action of a MERGE WHEN clause. The numeric
// values mirror the analyzer's wire enumeration.
type MergeAction int

// Merge actions.
const (
	MergeActionInsert MergeAction = iota
	MergeActionUpdate
	MergeActionDelete
)

// MergeWhen is a single WHEN clause of a MERGE statement. UpdateItems is
// set for update actions; InsertColumns and InsertRow for insert actions.
type MergeWhen struct {
	Action        MergeAction  `json:"action"`
	UpdateItems   []UpdateItem `json:"update_items,omitempty"`
	InsertColumns []Column     `json:"insert_columns,omitempty"`
	InsertRow     []Expr       `json:"insert_row,omitempty"`
}

// SubqueryType identifies the kind of a subquery expression. The numeric
// values mirror the analyzer's wire enumeration.
type SubqueryType int

// Subquery types.
const (
	SubqueryScalar SubqueryType = iota
	SubqueryArray
	SubqueryExists
	SubqueryIn
)
