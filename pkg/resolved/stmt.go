package resolved

// Statement is a resolved SQL statement.
type Statement interface {
	stmtNode()
}

// QueryStmt is a plain SELECT statement.
type QueryStmt struct {
	Query         Scan           `json:"query"`
	OutputColumns []OutputColumn `json:"output_columns"`
}

// CreateTableAsSelectStmt is a CREATE TABLE ... AS SELECT statement.
type CreateTableAsSelectStmt struct {
	NamePath      []string       `json:"name_path"` // qualified name of the table being created
	Query         Scan           `json:"query"`
	OutputColumns []OutputColumn `json:"output_columns"`
}

// CreateViewStmt is a CREATE VIEW or CREATE MATERIALIZED VIEW statement.
type CreateViewStmt struct {
	NamePath      []string       `json:"name_path"`
	Materialized  bool           `json:"materialized,omitempty"`
	Query         Scan           `json:"query"`
	OutputColumns []OutputColumn `json:"output_columns"`
}

// InsertStmt is an INSERT statement. Exactly one of Query (INSERT ... SELECT)
// or Rows (INSERT ... VALUES) is normally set; both may be nil for
// structurally valid but degenerate input.
type InsertStmt struct {
	TableScan     *TableScan `json:"table_scan"`
	InsertColumns []Column   `json:"insert_columns"`
	Query         Scan       `json:"query,omitempty"`
	Rows          [][]Expr   `json:"rows,omitempty"`
}

// UpdateStmt is an UPDATE statement.
type UpdateStmt struct {
	TableScan   *TableScan   `json:"table_scan"`
	UpdateItems []UpdateItem `json:"update_items"`
	Where       Expr         `json:"where,omitempty"`
	FromScan    Scan         `json:"from_scan,omitempty"` // joined FROM clause, if any
}

// MergeStmt is a MERGE statement.
type MergeStmt struct {
	TableScan   *TableScan  `json:"table_scan"`
	FromScan    Scan        `json:"from_scan,omitempty"` // USING clause joined with the target
	MergeExpr   Expr        `json:"merge_expr,omitempty"` // ON condition
	WhenClauses []MergeWhen `json:"when_clauses"`
}

// DeleteStmt is a DELETE statement.
type DeleteStmt struct {
	TableScan *TableScan `json:"table_scan"`
	Where     Expr       `json:"where,omitempty"`
}

func (*QueryStmt) stmtNode()               {}
func (*CreateTableAsSelectStmt) stmtNode() {}
func (*CreateViewStmt) stmtNode()          {}
func (*InsertStmt) stmtNode()              {}
func (*UpdateStmt) stmtNode()              {}
func (*MergeStmt) stmtNode()               {}
func (*DeleteStmt) stmtNode()              {}
