package lineage

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/resolved"
)

// ExtractColumnLineage determines, for every output or written column of
// a resolved statement, the set of terminal source columns it derives
// from. The result is a set: identical (target, parents) pairs collapse.
// It is returned sorted lexicographically by (table, column) of the
// target for deterministic output.
//
// Unsupported statement kinds yield an empty result, not an error.
func ExtractColumnLineage(stmt resolved.Statement) []ColumnLineage {
	switch s := stmt.(type) {
	case *resolved.QueryStmt:
		return outputLineage(s, "", s.OutputColumns)

	case *resolved.CreateTableAsSelectStmt:
		return outputLineage(s, strings.Join(s.NamePath, "."), s.OutputColumns)

	case *resolved.CreateViewStmt:
		return outputLineage(s, strings.Join(s.NamePath, "."), s.OutputColumns)

	case *resolved.InsertStmt:
		return insertLineage(s)

	case *resolved.UpdateStmt:
		return updateLineage(s)

	case *resolved.MergeStmt:
		return mergeLineage(s)

	default:
		return nil
	}
}

// lineageSet collapses identical lineage records.
type lineageSet map[string]ColumnLineage

func (s lineageSet) add(l ColumnLineage) { s[l.key()] = l }

func (s lineageSet) sorted() []ColumnLineage {
	result := make([]ColumnLineage, 0, len(s))
	for _, l := range s {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Target.Table != result[j].Target.Table {
			return result[i].Target.Table < result[j].Target.Table
		}
		if result[i].Target.Name != result[j].Target.Name {
			return result[i].Target.Name < result[j].Target.Name
		}
		return result[i].key() < result[j].key()
	})
	return result
}

func terminalEntities(columns []resolved.Column) ColumnSet {
	parents := NewColumnSet()
	for _, c := range columns {
		parents.Add(columnEntityOf(c))
	}
	return parents
}

// outputLineage handles plain queries and CREATE ... AS SELECT: one entry
// per output column, resolved against a single graph built from the whole
// statement.
func outputLineage(stmt resolved.Statement, targetTable string, outputs []resolved.OutputColumn) []ColumnLineage {
	g := buildParentGraph(stmt)
	set := make(lineageSet, len(outputs))
	for _, out := range outputs {
		set.add(ColumnLineage{
			Target:  ColumnEntity{Table: targetTable, Name: out.Name},
			Parents: terminalEntities(g.terminalParents(out.Column)),
		})
	}
	return set.sorted()
}

// insertLineage matches declared insert columns positionally against the
// source query's output columns, or against each VALUES row's
// expressions. Mismatched lengths truncate to the shorter list.
func insertLineage(stmt *resolved.InsertStmt) []ColumnLineage {
	if stmt.TableScan == nil || stmt.TableScan.TableName == "" {
		return nil
	}
	targetTable := stmt.TableScan.TableName
	g := buildParentGraph(stmt)
	set := make(lineageSet, len(stmt.InsertColumns))

	if stmt.Query != nil {
		queryColumns := stmt.Query.Columns()
		for i, insertColumn := range stmt.InsertColumns {
			if i >= len(queryColumns) {
				break
			}
			set.add(ColumnLineage{
				Target:  ColumnEntity{Table: targetTable, Name: insertColumn.Name},
				Parents: terminalEntities(g.terminalParents(queryColumns[i])),
			})
		}
		return set.sorted()
	}

	// INSERT ... VALUES: union parents per column across all rows.
	if len(stmt.Rows) > 0 {
		for i, insertColumn := range stmt.InsertColumns {
			parents := NewColumnSet()
			for _, row := range stmt.Rows {
				if i >= len(row) {
					continue
				}
				for _, p := range g.terminalParentsOfExpr(row[i]) {
					parents.Add(columnEntityOf(p))
				}
			}
			set.add(ColumnLineage{
				Target:  ColumnEntity{Table: targetTable, Name: insertColumn.Name},
				Parents: parents,
			})
		}
	}
	return set.sorted()
}

// updateLineage produces one entry per SET assignment.
func updateLineage(stmt *resolved.UpdateStmt) []ColumnLineage {
	if stmt.TableScan == nil || stmt.TableScan.TableName == "" {
		return nil
	}
	targetTable := stmt.TableScan.TableName
	g := buildParentGraph(stmt)
	set := make(lineageSet, len(stmt.UpdateItems))
	for _, item := range stmt.UpdateItems {
		set.add(ColumnLineage{
			Target:  ColumnEntity{Table: targetTable, Name: item.Target.Name},
			Parents: terminalEntities(g.terminalParentsOfExpr(item.Value)),
		})
	}
	return set.sorted()
}

// mergeLineage handles MERGE WHEN clauses: matched-update actions follow
// the UPDATE rule, not-matched-insert actions positionally match insert
// columns against the insert row. Other actions (DELETE included)
// contribute no lineage.
func mergeLineage(stmt *resolved.MergeStmt) []ColumnLineage {
	if stmt.TableScan == nil || stmt.TableScan.TableName == "" {
		return nil
	}
	targetTable := stmt.TableScan.TableName
	g := buildParentGraph(stmt)
	set := make(lineageSet)

	for _, when := range stmt.WhenClauses {
		switch when.Action {
		case resolved.MergeActionUpdate:
			for _, item := range when.UpdateItems {
				set.add(ColumnLineage{
					Target:  ColumnEntity{Table: targetTable, Name: item.Target.Name},
					Parents: terminalEntities(g.terminalParentsOfExpr(item.Value)),
				})
			}
		case resolved.MergeActionInsert:
			for i, insertColumn := range when.InsertColumns {
				if i >= len(when.InsertRow) {
					break
				}
				set.add(ColumnLineage{
					Target:  ColumnEntity{Table: targetTable, Name: insertColumn.Name},
					Parents: terminalEntities(g.terminalParentsOfExpr(when.InsertRow[i])),
				})
			}
		}
	}
	return set.sorted()
}
