package resolved

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Node kind tags used by the JSON codec. An external analyzer process
// emits trees with these discriminators.
const (
	KindLiteral               = "literal"
	KindColumnRef             = "column_ref"
	KindCast                  = "cast"
	KindFunctionCall          = "function_call"
	KindAggregateFunctionCall = "aggregate_function_call"
	KindAnalyticFunctionCall  = "analytic_function_call"
	KindSubqueryExpr          = "subquery_expr"
	KindMakeStruct            = "make_struct"
	KindGetStructField        = "get_struct_field"
	KindWithExpr              = "with_expr"

	KindTableScan        = "table_scan"
	KindTVFScan          = "tvf_scan"
	KindProjectScan      = "project_scan"
	KindFilterScan       = "filter_scan"
	KindJoinScan         = "join_scan"
	KindAggregateScan    = "aggregate_scan"
	KindAnalyticScan     = "analytic_scan"
	KindArrayScan        = "array_scan"
	KindSetOperationScan = "set_operation_scan"
	KindWithScan         = "with_scan"
	KindWithRefScan      = "with_ref_scan"
	KindOrderByScan      = "order_by_scan"
	KindLimitScan        = "limit_scan"

	KindQueryStmt               = "query_stmt"
	KindCreateTableAsSelectStmt = "create_table_as_select_stmt"
	KindCreateViewStmt          = "create_view_stmt"
	KindInsertStmt              = "insert_stmt"
	KindUpdateStmt              = "update_stmt"
	KindMergeStmt               = "merge_stmt"
	KindDeleteStmt              = "delete_stmt"
)

// UnknownKindError reports a node envelope whose kind tag is missing or
// not part of the contract.
type UnknownKindError struct {
	Node string // "statement", "scan" or "expression"
	Kind string
}

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("resolved: %s node is missing a kind tag", e.Node)
	}
	return fmt.Sprintf("resolved: unknown %s kind %q", e.Node, e.Kind)
}

// DecodeStatement reads one kind-tagged resolved statement from r.
func DecodeStatement(r io.Reader) (Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resolved: read statement: %w", err)
	}
	return decodeStatement(data)
}

// EncodeStatement writes stmt to w as indented kind-tagged JSON.
func EncodeStatement(w io.Writer, stmt Statement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stmt)
}

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

func probeKind(data []byte) (string, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", err
	}
	return probe.Kind, nil
}

func decodeStatement(data []byte) (Statement, error) {
	if isNull(data) {
		return nil, nil
	}
	kind, err := probeKind(data)
	if err != nil {
		return nil, err
	}
	var stmt Statement
	switch kind {
	case KindQueryStmt:
		stmt = new(QueryStmt)
	case KindCreateTableAsSelectStmt:
		stmt = new(CreateTableAsSelectStmt)
	case KindCreateViewStmt:
		stmt = new(CreateViewStmt)
	case KindInsertStmt:
		stmt = new(InsertStmt)
	case KindUpdateStmt:
		stmt = new(UpdateStmt)
	case KindMergeStmt:
		stmt = new(MergeStmt)
	case KindDeleteStmt:
		stmt = new(DeleteStmt)
	default:
		return nil, &UnknownKindError{Node: "statement", Kind: kind}
	}
	if err := json.Unmarshal(data, stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeScan(data []byte) (Scan, error) {
	if isNull(data) {
		return nil, nil
	}
	kind, err := probeKind(data)
	if err != nil {
		return nil, err
	}
	var scan Scan
	switch kind {
	case KindTableScan:
		scan = new(TableScan)
	case KindTVFScan:
		scan = new(TVFScan)
	case KindProjectScan:
		scan = new(ProjectScan)
	case KindFilterScan:
		scan = new(FilterScan)
	case KindJoinScan:
		scan = new(JoinScan)
	case KindAggregateScan:
		scan = new(AggregateScan)
	case KindAnalyticScan:
		scan = new(AnalyticScan)
	case KindArrayScan:
		scan = new(ArrayScan)
	case KindSetOperationScan:
		scan = new(SetOperationScan)
	case KindWithScan:
		scan = new(WithScan)
	case KindWithRefScan:
		scan = new(WithRefScan)
	case KindOrderByScan:
		scan = new(OrderByScan)
	case KindLimitScan:
		scan = new(LimitScan)
	default:
		return nil, &UnknownKindError{Node: "scan", Kind: kind}
	}
	if err := json.Unmarshal(data, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

func decodeExpr(data []byte) (Expr, error) {
	if isNull(data) {
		return nil, nil
	}
	kind, err := probeKind(data)
	if err != nil {
		return nil, err
	}
	var expr Expr
	switch kind {
	case KindLiteral:
		expr = new(Literal)
	case KindColumnRef:
		expr = new(ColumnRef)
	case KindCast:
		expr = new(Cast)
	case KindFunctionCall:
		expr = new(FunctionCall)
	case KindAggregateFunctionCall:
		expr = new(AggregateFunctionCall)
	case KindAnalyticFunctionCall:
		expr = new(AnalyticFunctionCall)
	case KindSubqueryExpr:
		expr = new(SubqueryExpr)
	case KindMakeStruct:
		expr = new(MakeStruct)
	case KindGetStructField:
		expr = new(GetStructField)
	case KindWithExpr:
		expr = new(WithExpr)
	default:
		return nil, &UnknownKindError{Node: "expression", Kind: kind}
	}
	if err := json.Unmarshal(data, expr); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeExprList(raws []json.RawMessage) ([]Expr, error) {
	if raws == nil {
		return nil, nil
	}
	exprs := make([]Expr, len(raws))
	for i, raw := range raws {
		e, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// ---------- Marshaling ----------
//
// Each node marshals itself with its kind tag prepended; interface-typed
// children are handled by the json package dispatching to the child's own
// MarshalJSON. The local alias type drops the method set so the embedded
// marshal does not recurse.

func marshalKinded[T any](kind string, node T) ([]byte, error) {
	inner, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	tag := []byte(`{"kind":"` + kind + `"`)
	if bytes.Equal(inner, []byte("{}")) {
		return append(tag, '}'), nil
	}
	tag = append(tag, ',')
	return append(tag, inner[1:]...), nil
}

func (e *Literal) MarshalJSON() ([]byte, error) {
	type alias Literal
	return marshalKinded(KindLiteral, (*alias)(e))
}

func (e *ColumnRef) MarshalJSON() ([]byte, error) {
	type alias ColumnRef
	return marshalKinded(KindColumnRef, (*alias)(e))
}

func (e *Cast) MarshalJSON() ([]byte, error) {
	type alias Cast
	return marshalKinded(KindCast, (*alias)(e))
}

func (e *FunctionCall) MarshalJSON() ([]byte, error) {
	type alias FunctionCall
	return marshalKinded(KindFunctionCall, (*alias)(e))
}

func (e *AggregateFunctionCall) MarshalJSON() ([]byte, error) {
	type alias AggregateFunctionCall
	return marshalKinded(KindAggregateFunctionCall, (*alias)(e))
}

func (e *AnalyticFunctionCall) MarshalJSON() ([]byte, error) {
	type alias AnalyticFunctionCall
	return marshalKinded(KindAnalyticFunctionCall, (*alias)(e))
}

func (e *SubqueryExpr) MarshalJSON() ([]byte, error) {
	type alias SubqueryExpr
	return marshalKinded(KindSubqueryExpr, (*alias)(e))
}

func (e *MakeStruct) MarshalJSON() ([]byte, error) {
	type alias MakeStruct
	return marshalKinded(KindMakeStruct, (*alias)(e))
}

func (e *GetStructField) MarshalJSON() ([]byte, error) {
	type alias GetStructField
	return marshalKinded(KindGetStructField, (*alias)(e))
}

func (e *WithExpr) MarshalJSON() ([]byte, error) {
	type alias WithExpr
	return marshalKinded(KindWithExpr, (*alias)(e))
}

func (s *TableScan) MarshalJSON() ([]byte, error) {
	type alias TableScan
	return marshalKinded(KindTableScan, (*alias)(s))
}

func (s *TVFScan) MarshalJSON() ([]byte, error) {
	type alias TVFScan
	return marshalKinded(KindTVFScan, (*alias)(s))
}

func (s *ProjectScan) MarshalJSON() ([]byte, error) {
	type alias ProjectScan
	return marshalKinded(KindProjectScan, (*alias)(s))
}

func (s *FilterScan) MarshalJSON() ([]byte, error) {
	type alias FilterScan
	return marshalKinded(KindFilterScan, (*alias)(s))
}

func (s *JoinScan) MarshalJSON() ([]byte, error) {
	type alias JoinScan
	return marshalKinded(KindJoinScan, (*alias)(s))
}

func (s *AggregateScan) MarshalJSON() ([]byte, error) {
	type alias AggregateScan
	return marshalKinded(KindAggregateScan, (*alias)(s))
}

func (s *AnalyticScan) MarshalJSON() ([]byte, error) {
	type alias AnalyticScan
	return marshalKinded(KindAnalyticScan, (*alias)(s))
}

func (s *ArrayScan) MarshalJSON() ([]byte, error) {
	type alias ArrayScan
	return marshalKinded(KindArrayScan, (*alias)(s))
}

func (s *SetOperationScan) MarshalJSON() ([]byte, error) {
	type alias SetOperationScan
	return marshalKinded(KindSetOperationScan, (*alias)(s))
}

func (s *WithScan) MarshalJSON() ([]byte, error) {
	type alias WithScan
	return marshalKinded(KindWithScan, (*alias)(s))
}

func (s *WithRefScan) MarshalJSON() ([]byte, error) {
	type alias WithRefScan
	return marshalKinded(KindWithRefScan, (*alias)(s))
}

func (s *OrderByScan) MarshalJSON() ([]byte, error) {
	type alias OrderByScan
	return marshalKinded(KindOrderByScan, (*alias)(s))
}

func (s *LimitScan) MarshalJSON() ([]byte, error) {
	type alias LimitScan
	return marshalKinded(KindLimitScan, (*alias)(s))
}

func (s *QueryStmt) MarshalJSON() ([]byte, error) {
	type alias QueryStmt
	return marshalKinded(KindQueryStmt, (*alias)(s))
}

func (s *CreateTableAsSelectStmt) MarshalJSON() ([]byte, error) {
	type alias CreateTableAsSelectStmt
	return marshalKinded(KindCreateTableAsSelectStmt, (*alias)(s))
}

func (s *CreateViewStmt) MarshalJSON() ([]byte, error) {
	type alias CreateViewStmt
	return marshalKinded(KindCreateViewStmt, (*alias)(s))
}

func (s *InsertStmt) MarshalJSON() ([]byte, error) {
	type alias InsertStmt
	return marshalKinded(KindInsertStmt, (*alias)(s))
}

func (s *UpdateStmt) MarshalJSON() ([]byte, error) {
	type alias UpdateStmt
	return marshalKinded(KindUpdateStmt, (*alias)(s))
}

func (s *MergeStmt) MarshalJSON() ([]byte, error) {
	type alias MergeStmt
	return marshalKinded(KindMergeStmt, (*alias)(s))
}

func (s *DeleteStmt) MarshalJSON() ([]byte, error) {
	type alias DeleteStmt
	return marshalKinded(KindDeleteStmt, (*alias)(s))
}

// ---------- Unmarshaling ----------
//
// Structs holding interface-typed children decode through shadow structs
// with raw messages for the polymorphic fields, then dispatch on the kind
// tag. Structs with only concrete fields use the default decoder.

func (e *Cast) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ  Type            `json:"type"`
		Expr json.RawMessage `json:"expr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ = raw.Typ
	var err error
	e.Expr, err = decodeExpr(raw.Expr)
	return err
}

func (e *FunctionCall) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ  Type              `json:"type"`
		Name string            `json:"name"`
		Args []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ, e.Name = raw.Typ, raw.Name
	var err error
	e.Args, err = decodeExprList(raw.Args)
	return err
}

func (e *AggregateFunctionCall) UnmarshalJSON(data []byte) error {
	var fc FunctionCall
	if err := fc.UnmarshalJSON(data); err != nil {
		return err
	}
	e.Typ, e.Name, e.Args = fc.Typ, fc.Name, fc.Args
	return nil
}

func (e *AnalyticFunctionCall) UnmarshalJSON(data []byte) error {
	var fc FunctionCall
	if err := fc.UnmarshalJSON(data); err != nil {
		return err
	}
	e.Typ, e.Name, e.Args = fc.Typ, fc.Name, fc.Args
	return nil
}

func (e *SubqueryExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ          Type            `json:"type"`
		SubqueryType SubqueryType    `json:"subquery_type"`
		Subquery     json.RawMessage `json:"subquery"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ, e.SubqueryType = raw.Typ, raw.SubqueryType
	var err error
	e.Subquery, err = decodeScan(raw.Subquery)
	return err
}

func (e *MakeStruct) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ        Type              `json:"type"`
		FieldExprs []json.RawMessage `json:"field_exprs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ = raw.Typ
	var err error
	e.FieldExprs, err = decodeExprList(raw.FieldExprs)
	return err
}

func (e *GetStructField) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ        Type            `json:"type"`
		Expr       json.RawMessage `json:"expr"`
		FieldIndex int             `json:"field_index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ, e.FieldIndex = raw.Typ, raw.FieldIndex
	var err error
	e.Expr, err = decodeExpr(raw.Expr)
	return err
}

func (e *WithExpr) UnmarshalJSON(data []byte) error {
	var raw struct {
		Typ         Type             `json:"type"`
		Assignments []ComputedColumn `json:"assignments"`
		Expr        json.RawMessage  `json:"expr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Typ, e.Assignments = raw.Typ, raw.Assignments
	var err error
	e.Expr, err = decodeExpr(raw.Expr)
	return err
}

func (c *ComputedColumn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Column Column          `json:"column"`
		Expr   json.RawMessage `json:"expr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Column = raw.Column
	var err error
	c.Expr, err = decodeExpr(raw.Expr)
	return err
}

func (u *UpdateItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Target Column          `json:"target"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.Target = raw.Target
	var err error
	u.Value, err = decodeExpr(raw.Value)
	return err
}

func (w *WithEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Subquery json.RawMessage `json:"subquery"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.Name = raw.Name
	var err error
	w.Subquery, err = decodeScan(raw.Subquery)
	return err
}

func (s *SetOperationItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Scan          json.RawMessage `json:"scan"`
		OutputColumns []Column        `json:"output_columns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.OutputColumns = raw.OutputColumns
	var err error
	s.Scan, err = decodeScan(raw.Scan)
	return err
}

func (m *MergeWhen) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action        MergeAction       `json:"action"`
		UpdateItems   []UpdateItem      `json:"update_items"`
		InsertColumns []Column          `json:"insert_columns"`
		InsertRow     []json.RawMessage `json:"insert_row"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Action, m.UpdateItems, m.InsertColumns = raw.Action, raw.UpdateItems, raw.InsertColumns
	var err error
	m.InsertRow, err = decodeExprList(raw.InsertRow)
	return err
}

func (s *ProjectScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column         `json:"column_list"`
		Input      json.RawMessage  `json:"input"`
		Exprs      []ComputedColumn `json:"exprs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.Exprs = raw.ColumnList, raw.Exprs
	var err error
	s.Input, err = decodeScan(raw.Input)
	return err
}

func (s *FilterScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column        `json:"column_list"`
		Input      json.RawMessage `json:"input"`
		Filter     json.RawMessage `json:"filter"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList = raw.ColumnList
	var err error
	if s.Input, err = decodeScan(raw.Input); err != nil {
		return err
	}
	s.Filter, err = decodeExpr(raw.Filter)
	return err
}

func (s *JoinScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column        `json:"column_list"`
		JoinType   string          `json:"join_type"`
		Left       json.RawMessage `json:"left"`
		Right      json.RawMessage `json:"right"`
		JoinExpr   json.RawMessage `json:"join_expr"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.JoinType = raw.ColumnList, raw.JoinType
	var err error
	if s.Left, err = decodeScan(raw.Left); err != nil {
		return err
	}
	if s.Right, err = decodeScan(raw.Right); err != nil {
		return err
	}
	s.JoinExpr, err = decodeExpr(raw.JoinExpr)
	return err
}

func (s *AggregateScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column         `json:"column_list"`
		Input      json.RawMessage  `json:"input"`
		GroupBy    []ComputedColumn `json:"group_by"`
		Aggregates []ComputedColumn `json:"aggregates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.GroupBy, s.Aggregates = raw.ColumnList, raw.GroupBy, raw.Aggregates
	var err error
	s.Input, err = decodeScan(raw.Input)
	return err
}

func (s *AnalyticScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column         `json:"column_list"`
		Input      json.RawMessage  `json:"input"`
		Functions  []ComputedColumn `json:"functions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.Functions = raw.ColumnList, raw.Functions
	var err error
	s.Input, err = decodeScan(raw.Input)
	return err
}

func (s *ArrayScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList    []Column        `json:"column_list"`
		Input         json.RawMessage `json:"input"`
		ArrayExpr     json.RawMessage `json:"array_expr"`
		ElementColumn Column          `json:"element_column"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.ElementColumn = raw.ColumnList, raw.ElementColumn
	var err error
	if s.Input, err = decodeScan(raw.Input); err != nil {
		return err
	}
	s.ArrayExpr, err = decodeExpr(raw.ArrayExpr)
	return err
}

func (s *SetOperationScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column           `json:"column_list"`
		OpType     string             `json:"op_type"`
		Items      []SetOperationItem `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.OpType, s.Items = raw.ColumnList, raw.OpType, raw.Items
	return nil
}

func (s *WithScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column        `json:"column_list"`
		Entries    []WithEntry     `json:"entries"`
		Query      json.RawMessage `json:"query"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList, s.Entries = raw.ColumnList, raw.Entries
	var err error
	s.Query, err = decodeScan(raw.Query)
	return err
}

func (s *OrderByScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column        `json:"column_list"`
		Input      json.RawMessage `json:"input"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList = raw.ColumnList
	var err error
	s.Input, err = decodeScan(raw.Input)
	return err
}

func (s *LimitScan) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColumnList []Column        `json:"column_list"`
		Input      json.RawMessage `json:"input"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ColumnList = raw.ColumnList
	var err error
	s.Input, err = decodeScan(raw.Input)
	return err
}

func (s *QueryStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		Query         json.RawMessage `json:"query"`
		OutputColumns []OutputColumn  `json:"output_columns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.OutputColumns = raw.OutputColumns
	var err error
	s.Query, err = decodeScan(raw.Query)
	return err
}

func (s *CreateTableAsSelectStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NamePath      []string        `json:"name_path"`
		Query         json.RawMessage `json:"query"`
		OutputColumns []OutputColumn  `json:"output_columns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.NamePath, s.OutputColumns = raw.NamePath, raw.OutputColumns
	var err error
	s.Query, err = decodeScan(raw.Query)
	return err
}

func (s *CreateViewStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		NamePath      []string        `json:"name_path"`
		Materialized  bool            `json:"materialized"`
		Query         json.RawMessage `json:"query"`
		OutputColumns []OutputColumn  `json:"output_columns"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.NamePath, s.Materialized, s.OutputColumns = raw.NamePath, raw.Materialized, raw.OutputColumns
	var err error
	s.Query, err = decodeScan(raw.Query)
	return err
}

func (s *InsertStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		TableScan     *TableScan          `json:"table_scan"`
		InsertColumns []Column            `json:"insert_columns"`
		Query         json.RawMessage     `json:"query"`
		Rows          [][]json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TableScan, s.InsertColumns = raw.TableScan, raw.InsertColumns
	var err error
	if s.Query, err = decodeScan(raw.Query); err != nil {
		return err
	}
	if raw.Rows != nil {
		s.Rows = make([][]Expr, len(raw.Rows))
		for i, row := range raw.Rows {
			if s.Rows[i], err = decodeExprList(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *UpdateStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		TableScan   *TableScan      `json:"table_scan"`
		UpdateItems []UpdateItem    `json:"update_items"`
		Where       json.RawMessage `json:"where"`
		FromScan    json.RawMessage `json:"from_scan"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TableScan, s.UpdateItems = raw.TableScan, raw.UpdateItems
	var err error
	if s.Where, err = decodeExpr(raw.Where); err != nil {
		return err
	}
	s.FromScan, err = decodeScan(raw.FromScan)
	return err
}

func (s *MergeStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		TableScan   *TableScan      `json:"table_scan"`
		FromScan    json.RawMessage `json:"from_scan"`
		MergeExpr   json.RawMessage `json:"merge_expr"`
		WhenClauses []MergeWhen     `json:"when_clauses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TableScan, s.WhenClauses = raw.TableScan, raw.WhenClauses
	var err error
	if s.FromScan, err = decodeScan(raw.FromScan); err != nil {
		return err
	}
	s.MergeExpr, err = decodeExpr(raw.MergeExpr)
	return err
}

func (s *DeleteStmt) UnmarshalJSON(data []byte) error {
	var raw struct {
		TableScan *TableScan      `json:"table_scan"`
		Where     json.RawMessage `json:"where"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TableScan = raw.TableScan
	var err error
	s.Where, err = decodeExpr(raw.Where)
	return err
}
