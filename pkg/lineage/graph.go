package lineage

import (
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/resolved"
)

// parentGraph maps every column of one statement to its direct parent
// columns, and records which columns are terminal (produced directly by a
// table or table-valued-function scan). All state is scoped to a single
// extraction: a fresh graph is built per statement and never shared.
type parentGraph struct {
	parents  map[string][]resolved.Column
	terminal map[string]struct{}

	// scopes is the stack of in-scope CTE definition lists; inner WITH
	// clauses push later and shadow earlier names.
	scopes [][]resolved.WithEntry

	// computing is the stack of columns currently being computed, so a
	// nested struct field's parents propagate to every enclosing column.
	computing []resolved.Column
}

// buildParentGraph walks a statement once and returns its parent graph.
func buildParentGraph(stmt resolved.Statement) *parentGraph {
	g := &parentGraph{
		parents:  make(map[string][]resolved.Column),
		terminal: make(map[string]struct{}),
	}
	g.buildStatement(stmt)
	return g
}

func (g *parentGraph) buildStatement(stmt resolved.Statement) {
	switch s := stmt.(type) {
	case *resolved.QueryStmt:
		g.buildScan(s.Query)

	case *resolved.CreateTableAsSelectStmt:
		g.buildScan(s.Query)

	case *resolved.CreateViewStmt:
		g.buildScan(s.Query)

	case *resolved.InsertStmt:
		if s.TableScan != nil {
			g.buildScan(s.TableScan)
		}
		g.buildScan(s.Query)
		for _, row := range s.Rows {
			for _, expr := range row {
				g.buildExpr(expr)
			}
		}

	case *resolved.UpdateStmt:
		if s.TableScan != nil {
			g.buildScan(s.TableScan)
		}
		g.buildScan(s.FromScan)
		g.buildExpr(s.Where)
		for _, item := range s.UpdateItems {
			g.buildExpr(item.Value)
		}

	case *resolved.DeleteStmt:
		if s.TableScan != nil {
			g.buildScan(s.TableScan)
		}
		g.buildExpr(s.Where)

	case *resolved.MergeStmt:
		if s.TableScan != nil {
			g.buildScan(s.TableScan)
		}
		g.buildScan(s.FromScan)
		g.buildExpr(s.MergeExpr)
		for _, when := range s.WhenClauses {
			for _, item := range when.UpdateItems {
				g.buildExpr(item.Value)
			}
			for _, expr := range when.InsertRow {
				g.buildExpr(expr)
			}
		}
	}
}

func (g *parentGraph) buildScan(scan resolved.Scan) {
	switch s := scan.(type) {
	case nil:

	case *resolved.TableScan:
		g.registerTerminals(s.ColumnList)

	case *resolved.TVFScan:
		g.registerTerminals(s.ColumnList)

	case *resolved.ProjectScan:
		for _, cc := range s.Exprs {
			g.buildComputed(cc)
		}
		g.buildScan(s.Input)

	case *resolved.FilterScan:
		g.buildExpr(s.Filter)
		g.buildScan(s.Input)

	case *resolved.JoinScan:
		g.buildExpr(s.JoinExpr)
		g.buildScan(s.Left)
		g.buildScan(s.Right)

	case *resolved.AggregateScan:
		for _, cc := range s.GroupBy {
			g.buildComputed(cc)
		}
		for _, cc := range s.Aggregates {
			g.buildComputed(cc)
		}
		g.buildScan(s.Input)

	case *resolved.AnalyticScan:
		for _, cc := range s.Functions {
			g.buildComputed(cc)
		}
		g.buildScan(s.Input)

	case *resolved.ArrayScan:
		g.computing = append(g.computing, s.ElementColumn)
		g.attachToComputing(directParents(s.ArrayExpr))
		g.computing = g.computing[:len(g.computing)-1]
		g.buildExpr(s.ArrayExpr)
		g.buildScan(s.Input)

	case *resolved.SetOperationScan:
		// Output column i depends on position i of every branch, not just
		// the first.
		for i, out := range s.ColumnList {
			for _, item := range s.Items {
				if i < len(item.OutputColumns) {
					g.addParent(out, item.OutputColumns[i])
				}
			}
		}
		for _, item := range s.Items {
			g.buildScan(item.Scan)
		}

	case *resolved.WithScan:
		g.scopes = append(g.scopes, s.Entries)
		for _, entry := range s.Entries {
			g.buildScan(entry.Subquery)
		}
		g.buildScan(s.Query)
		g.scopes = g.scopes[:len(g.scopes)-1]

	case *resolved.WithRefScan:
		g.buildWithRef(s)

	case *resolved.OrderByScan:
		g.buildScan(s.Input)

	case *resolved.LimitScan:
		g.buildScan(s.Input)
	}
}

// buildComputed records the direct parents of a computed column. Struct
// constructors additionally get one synthetic column per field so that
// later field accesses resolve precisely.
func (g *parentGraph) buildComputed(cc resolved.ComputedColumn) {
	g.computing = append(g.computing, cc.Column)
	if ms, ok := cc.Expr.(*resolved.MakeStruct); ok {
		g.buildStructLiteral(cc.Column, ms)
	} else {
		g.attachToComputing(directParents(cc.Expr))
	}
	g.computing = g.computing[:len(g.computing)-1]

	// Subqueries nested in the expression carry their own scans; their
	// interiors must be part of the graph too. Columns computed inside them
	// are not parents of the enclosing columns: only directParents decides
	// what feeds a column, so the stack is cleared for the descent.
	saved := g.computing
	g.computing = nil
	g.buildExpr(cc.Expr)
	g.computing = saved
}

func (g *parentGraph) buildStructLiteral(target resolved.Column, ms *resolved.MakeStruct) {
	for i, fld := range ms.Typ.Fields {
		if i >= len(ms.FieldExprs) {
			return
		}
		fieldExpr := ms.FieldExprs[i]
		fieldColumn := resolved.Column{
			ID:    target.ID,
			Table: target.Table,
			Name:  target.Name + "." + fld.Name,
			Type:  fieldExpr.Type(),
		}
		g.computing = append(g.computing, fieldColumn)
		g.attachToComputing(directParents(fieldExpr))
		if nested, ok := fieldExpr.(*resolved.MakeStruct); ok {
			g.buildStructLiteral(fieldColumn, nested)
		}
		g.computing = g.computing[:len(g.computing)-1]
	}
}

// buildExpr walks an expression for scans embedded in it (subqueries and
// scoped bindings) so the graph covers their interiors.
func (g *parentGraph) buildExpr(expr resolved.Expr) {
	switch e := expr.(type) {
	case nil:

	case *resolved.Cast:
		g.buildExpr(e.Expr)

	case *resolved.FunctionCall:
		for _, arg := range e.Args {
			g.buildExpr(arg)
		}

	case *resolved.AggregateFunctionCall:
		for _, arg := range e.Args {
			g.buildExpr(arg)
		}

	case *resolved.AnalyticFunctionCall:
		for _, arg := range e.Args {
			g.buildExpr(arg)
		}

	case *resolved.SubqueryExpr:
		g.buildScan(e.Subquery)

	case *resolved.MakeStruct:
		for _, fe := range e.FieldExprs {
			g.buildExpr(fe)
		}

	case *resolved.GetStructField:
		g.buildExpr(e.Expr)

	case *resolved.WithExpr:
		for _, cc := range e.Assignments {
			g.buildComputed(cc)
		}
		g.buildExpr(e.Expr)
	}
}

// buildWithRef positionally matches a CTE reference's columns against the
// referenced definition's output columns, expanding structs in lockstep
// on both sides. An unresolvable name is a no-op.
func (g *parentGraph) buildWithRef(ref *resolved.WithRefScan) {
	entry := g.lookupWithEntry(ref.Name)
	if entry == nil || entry.Subquery == nil {
		return
	}
	defColumns := entry.Subquery.Columns()
	for i, refColumn := range ref.ColumnList {
		if i >= len(defColumns) {
			return
		}
		expandedRef := expandStructColumn(refColumn)
		expandedDef := expandStructColumn(defColumns[i])
		for j := range expandedRef {
			if j >= len(expandedDef) {
				break
			}
			g.addParent(expandedRef[j], expandedDef[j])
		}
	}
}

// lookupWithEntry resolves a CTE name against the scope stack,
// innermost-first and case-insensitively.
func (g *parentGraph) lookupWithEntry(name string) *resolved.WithEntry {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		entries := g.scopes[i]
		for j := range entries {
			if strings.EqualFold(entries[j].Name, name) {
				return &entries[j]
			}
		}
	}
	return nil
}

// registerTerminals marks scan output columns, and every struct field
// they expand to, as terminal.
func (g *parentGraph) registerTerminals(columns []resolved.Column) {
	for _, col := range columns {
		for _, expanded := range expandStructColumn(col) {
			g.terminal[expanded.Key()] = struct{}{}
		}
	}
}

func (g *parentGraph) addParent(column, parent resolved.Column) {
	key := column.Key()
	g.parents[key] = append(g.parents[key], parent)
}

func (g *parentGraph) addParents(column resolved.Column, parents []resolved.Column) {
	if len(parents) == 0 {
		return
	}
	key := column.Key()
	g.parents[key] = append(g.parents[key], parents...)
}

// attachToComputing adds the parents to every column currently being
// computed, so nested struct fields feed all enclosing columns.
func (g *parentGraph) attachToComputing(parents []resolved.Column) {
	for _, col := range g.computing {
		g.addParents(col, parents)
	}
}

// expandStructColumn returns the column itself plus one synthetic
// sub-column per struct field, recursing into nested structs. Synthetic
// columns share the base column's ID and are named base.field.
func expandStructColumn(column resolved.Column) []resolved.Column {
	result := []resolved.Column{column}
	for _, fld := range column.Type.Fields {
		fieldColumn := resolved.Column{
			ID:    column.ID,
			Table: column.Table,
			Name:  column.Name + "." + fld.Name,
			Type:  fld.Type,
		}
		result = append(result, expandStructColumn(fieldColumn)...)
	}
	return result
}

// terminalParents resolves a column to its terminal ancestors with an
// iterative BFS over the parent graph. The visited set bounds the search
// even if the graph were malformed and cyclic.
func (g *parentGraph) terminalParents(column resolved.Column) []resolved.Column {
	var result []resolved.Column
	visited := make(map[string]struct{})
	queue := []resolved.Column{column}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		key := current.Key()
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		parents := g.parents[key]
		if len(parents) == 0 {
			if _, ok := g.terminal[key]; ok {
				result = append(result, current)
			}
			continue
		}
		queue = append(queue, parents...)
	}
	return result
}

// terminalParentsOfExpr resolves an expression's direct parents to their
// terminal ancestors.
func (g *parentGraph) terminalParentsOfExpr(expr resolved.Expr) []resolved.Column {
	var result []resolved.Column
	for _, parent := range directParents(expr) {
		result = append(result, g.terminalParents(parent)...)
	}
	return result
}
