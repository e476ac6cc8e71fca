package lineage

import (
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/resolved"
)

// ExtractTableLineage determines the tables a resolved statement reads
// and writes, and classifies the statement. Unrecognized statement kinds
// yield StatementUnknown with no target; that is not an error.
func ExtractTableLineage(stmt resolved.Statement) TableLineage {
	e := &tableExtractor{sources: make(TableSet)}
	result := TableLineage{Sources: e.sources, StatementType: StatementUnknown}

	switch s := stmt.(type) {
	case *resolved.QueryStmt:
		result.StatementType = StatementSelect
		e.walkScan(s.Query)

	case *resolved.CreateTableAsSelectStmt:
		result.StatementType = StatementCreateTableAsSelect
		result.Target = tableFromNamePath(s.NamePath)
		// The defining query is not a regular child of the create node;
		// walk it explicitly.
		e.walkScan(s.Query)

	case *resolved.CreateViewStmt:
		if s.Materialized {
			result.StatementType = StatementCreateMaterializedView
		} else {
			result.StatementType = StatementCreateView
		}
		result.Target = tableFromNamePath(s.NamePath)
		e.walkScan(s.Query)

	case *resolved.InsertStmt:
		result.StatementType = StatementInsert
		result.Target = tableFromScan(s.TableScan)
		e.walkScan(s.Query)
		for _, row := range s.Rows {
			for _, expr := range row {
				e.walkExpr(expr)
			}
		}

	case *resolved.UpdateStmt:
		result.StatementType = StatementUpdate
		result.Target = tableFromScan(s.TableScan)
		// An UPDATE reads the rows it mutates.
		if result.Target != nil {
			e.sources.Add(*result.Target)
		}
		for _, item := range s.UpdateItems {
			e.walkExpr(item.Value)
		}
		e.walkExpr(s.Where)
		e.walkScan(s.FromScan)

	case *resolved.DeleteStmt:
		result.StatementType = StatementDelete
		result.Target = tableFromScan(s.TableScan)
		// A DELETE reads the rows it removes.
		if result.Target != nil {
			e.sources.Add(*result.Target)
		}
		e.walkExpr(s.Where)

	case *resolved.MergeStmt:
		result.StatementType = StatementMerge
		result.Target = tableFromScan(s.TableScan)
		// MERGE matches against existing target rows.
		if result.Target != nil {
			e.sources.Add(*result.Target)
		}
		e.walkScan(s.FromScan)
		e.walkExpr(s.MergeExpr)
		for _, when := range s.WhenClauses {
			for _, item := range when.UpdateItems {
				e.walkExpr(item.Value)
			}
			for _, expr := range when.InsertRow {
				e.walkExpr(expr)
			}
		}
	}

	return result
}

func tableFromNamePath(path []string) *TableEntity {
	if len(path) == 0 {
		return nil
	}
	return &TableEntity{Name: strings.Join(path, ".")}
}

func tableFromScan(scan *resolved.TableScan) *TableEntity {
	if scan == nil || scan.TableName == "" {
		return nil
	}
	return &TableEntity{Name: scan.TableName}
}

// tableExtractor accumulates source tables over one statement walk.
type tableExtractor struct {
	sources TableSet
}

func (e *tableExtractor) walkScan(scan resolved.Scan) {
	switch s := scan.(type) {
	case nil:

	case *resolved.TableScan:
		e.sources.Add(TableEntity{Name: s.TableName})

	case *resolved.TVFScan:
		e.sources.Add(TableEntity{Name: s.Name})

	case *resolved.ProjectScan:
		for _, cc := range s.Exprs {
			e.walkExpr(cc.Expr)
		}
		e.walkScan(s.Input)

	case *resolved.FilterScan:
		e.walkExpr(s.Filter)
		e.walkScan(s.Input)

	case *resolved.JoinScan:
		e.walkExpr(s.JoinExpr)
		e.walkScan(s.Left)
		e.walkScan(s.Right)

	case *resolved.AggregateScan:
		for _, cc := range s.GroupBy {
			e.walkExpr(cc.Expr)
		}
		for _, cc := range s.Aggregates {
			e.walkExpr(cc.Expr)
		}
		e.walkScan(s.Input)

	case *resolved.AnalyticScan:
		for _, cc := range s.Functions {
			e.walkExpr(cc.Expr)
		}
		e.walkScan(s.Input)

	case *resolved.ArrayScan:
		e.walkExpr(s.ArrayExpr)
		e.walkScan(s.Input)

	case *resolved.SetOperationScan:
		for _, item := range s.Items {
			e.walkScan(item.Scan)
		}

	case *resolved.WithScan:
		// Definitions and the main query both contribute sources; the CTE
		// names themselves never do.
		for _, entry := range s.Entries {
			e.walkScan(entry.Subquery)
		}
		e.walkScan(s.Query)

	case *resolved.WithRefScan:
		// Resolved through the defining WithScan, never a source itself.

	case *resolved.OrderByScan:
		e.walkScan(s.Input)

	case *resolved.LimitScan:
		e.walkScan(s.Input)
	}
}

// walkExpr descends into expressions to pick up scans nested inside them,
// e.g. the subquery in WHERE y IN (SELECT y FROM u).
func (e *tableExtractor) walkExpr(expr resolved.Expr) {
	switch x := expr.(type) {
	case nil:

	case *resolved.Cast:
		e.walkExpr(x.Expr)

	case *resolved.FunctionCall:
		for _, arg := range x.Args {
			e.walkExpr(arg)
		}

	case *resolved.AggregateFunctionCall:
		for _, arg := range x.Args {
			e.walkExpr(arg)
		}

	case *resolved.AnalyticFunctionCall:
		for _, arg := range x.Args {
			e.walkExpr(arg)
		}

	case *resolved.SubqueryExpr:
		e.walkScan(x.Subquery)

	case *resolved.MakeStruct:
		for _, fe := range x.FieldExprs {
			e.walkExpr(fe)
		}

	case *resolved.GetStructField:
		e.walkExpr(x.Expr)

	case *resolved.WithExpr:
		for _, cc := range x.Assignments {
			e.walkExpr(cc.Expr)
		}
		e.walkExpr(x.Expr)
	}
}
