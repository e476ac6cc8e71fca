package resolved

// Scan is a resolved relational operator. Every scan produces a column
// list; Columns returns it.
type Scan interface {
	Columns() []Column
	scanNode()
}

// TableScan reads a catalog table.
type TableScan struct {
	ColumnList []Column `json:"column_list"`
	TableName  string   `json:"table_name"` // fully qualified
}

// TVFScan reads the output of a table-valued function.
type TVFScan struct {
	ColumnList []Column `json:"column_list"`
	Name       string   `json:"name"`
}

// ProjectScan computes new columns over an input scan.
type ProjectScan struct {
	ColumnList []Column         `json:"column_list"`
	Input      Scan             `json:"input"`
	Exprs      []ComputedColumn `json:"exprs,omitempty"`
}

// FilterScan applies a predicate to an input scan.
type FilterScan struct {
	ColumnList []Column `json:"column_list"`
	Input      Scan     `json:"input"`
	Filter     Expr     `json:"filter,omitempty"`
}

// JoinScan joins two input scans.
type JoinScan struct {
	ColumnList []Column `json:"column_list"`
	JoinType   string   `json:"join_type,omitempty"`
	Left       Scan     `json:"left"`
	Right      Scan     `json:"right"`
	JoinExpr   Expr     `json:"join_expr,omitempty"`
}

// AggregateScan groups an input scan and computes aggregates.
type AggregateScan struct {
	ColumnList []Column         `json:"column_list"`
	Input      Scan             `json:"input"`
	GroupBy    []ComputedColumn `json:"group_by,omitempty"`
	Aggregates []ComputedColumn `json:"aggregates,omitempty"`
}

// AnalyticScan computes window functions over an input scan.
type AnalyticScan struct {
	ColumnList []Column         `json:"column_list"`
	Input      Scan             `json:"input"`
	Functions  []ComputedColumn `json:"functions,omitempty"`
}

// ArrayScan unnests an array expression into one element column,
// optionally cross-joined with an input scan.
type ArrayScan struct {
	ColumnList    []Column `json:"column_list"`
	Input         Scan     `json:"input,omitempty"`
	ArrayExpr     Expr     `json:"array_expr,omitempty"`
	ElementColumn Column   `json:"element_column"`
}

// SetOperationScan combines input branches with UNION, INTERSECT or
// EXCEPT. Output column i draws from position i of every branch.
type SetOperationScan struct {
	ColumnList []Column           `json:"column_list"`
	OpType     string             `json:"op_type,omitempty"`
	Items      []SetOperationItem `json:"items"`
}

// WithScan introduces named CTE definitions scoped to its main query.
type WithScan struct {
	ColumnList []Column    `json:"column_list"`
	Entries    []WithEntry `json:"entries"`
	Query      Scan        `json:"query"`
}

// WithRefScan reads a CTE defined by an enclosing WithScan. Its columns
// match the referenced definition's output columns positionally.
type WithRefScan struct {
	ColumnList []Column `json:"column_list"`
	Name       string   `json:"name"`
}

// OrderByScan orders an input scan.
type OrderByScan struct {
	ColumnList []Column `json:"column_list"`
	Input      Scan     `json:"input"`
}

// LimitScan limits an input scan.
type LimitScan struct {
	ColumnList []Column `json:"column_list"`
	Input      Scan     `json:"input"`
}

func (s *TableScan) Columns() []Column        { return s.ColumnList }
func (s *TVFScan) Columns() []Column          { return s.ColumnList }
func (s *ProjectScan) Columns() []Column      { return s.ColumnList }
func (s *FilterScan) Columns() []Column       { return s.ColumnList }
func (s *JoinScan) Columns() []Column         { return s.ColumnList }
func (s *AggregateScan) Columns() []Column    { return s.ColumnList }
func (s *AnalyticScan) Columns() []Column     { return s.ColumnList }
func (s *ArrayScan) Columns() []Column        { return s.ColumnList }
func (s *SetOperationScan) Columns() []Column { return s.ColumnList }
func (s *WithScan) Columns() []Column         { return s.ColumnList }
func (s *WithRefScan) Columns() []Column      { return s.ColumnList }
func (s *OrderByScan) Columns() []Column      { return s.ColumnList }
func (s *LimitScan) Columns() []Column        { return s.ColumnList }

func (*TableScan) scanNode()        {}
func (*TVFScan) scanNode()          {}
func (*ProjectScan) scanNode()      {}
func (*FilterScan) scanNode()       {}
func (*JoinScan) scanNode()         {}
func (*AggregateScan) scanNode()    {}
func (*AnalyticScan) scanNode()     {}
func (*ArrayScan) scanNode()        {}
func (*SetOperationScan) scanNode() {}
func (*WithScan) scanNode()         {}
func (*WithRefScan) scanNode()      {}
func (*OrderByScan) scanNode()      {}
func (*LimitScan) scanNode()        {}
