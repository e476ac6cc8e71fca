package lineage

import (
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/resolved"
)

// directParents returns the columns an expression directly references, in
// reference order. Duplicates are preserved; deduplication happens at the
// entity level downstream.
//
// Conditional forms contribute only the arguments that can become the
// expression's value: CASE conditions, IF conditions and the NULLIF
// comparand never appear in the result.
func directParents(expr resolved.Expr) []resolved.Column {
	f := &parentFinder{}
	f.visit(expr)
	return f.result
}

type parentFinder struct {
	result []resolved.Column
}

func (f *parentFinder) visit(expr resolved.Expr) {
	switch e := expr.(type) {
	case nil:

	case *resolved.ColumnRef:
		f.result = append(f.result, e.Column)

	case *resolved.WithExpr:
		f.visit(e.Expr)

	case *resolved.SubqueryExpr:
		// Scalar and array subqueries yield their first output column.
		// EXISTS/IN subqueries contribute nothing to the output value.
		if e.SubqueryType != resolved.SubqueryScalar && e.SubqueryType != resolved.SubqueryArray {
			return
		}
		if e.Subquery == nil {
			return
		}
		if cols := e.Subquery.Columns(); len(cols) > 0 {
			f.result = append(f.result, cols[0])
		}

	case *resolved.FunctionCall:
		f.visitCall(e.Name, e.Args)

	case *resolved.AggregateFunctionCall:
		f.visitCall(e.Name, e.Args)

	case *resolved.AnalyticFunctionCall:
		f.visitCall(e.Name, e.Args)

	case *resolved.MakeStruct:
		for _, fe := range e.FieldExprs {
			f.visit(fe)
		}

	case *resolved.GetStructField:
		f.visitFieldAccess(e)

	case *resolved.Cast:
		f.visit(e.Expr)
	}
}

func (f *parentFinder) visitCall(name string, args []resolved.Expr) {
	switch strings.ToLower(name) {
	case resolved.FuncCaseNoValue:
		// CASE WHEN c1 THEN v1 WHEN c2 THEN v2 ELSE v3:
		// args [c1, v1, c2, v2, v3]; values sit at odd positions, the
		// ELSE arm is last.
		for i, arg := range args {
			if i%2 == 1 || i == len(args)-1 {
				f.visit(arg)
			}
		}
	case resolved.FuncCaseWithValue:
		// CASE e WHEN v1 THEN r1 WHEN v2 THEN r2 ELSE r3:
		// args [e, v1, r1, v2, r2, r3]; results sit at even positions
		// past the compared expression, the ELSE arm is last.
		for i, arg := range args {
			if (i != 0 && i%2 == 0) || i == len(args)-1 {
				f.visit(arg)
			}
		}
	case resolved.FuncIf:
		// IF(cond, a, b): the condition never becomes the value.
		if len(args) > 1 {
			for _, arg := range args[1:] {
				f.visit(arg)
			}
		}
	case resolved.FuncNullIf:
		// NULLIF(v, x): only v can become the value.
		if len(args) > 0 {
			f.visit(args[0])
		}
	default:
		for _, arg := range args {
			f.visit(arg)
		}
	}
}

func (f *parentFinder) visitFieldAccess(e *resolved.GetStructField) {
	if e.Expr == nil {
		return
	}
	fields := e.Expr.Type().Fields
	if e.FieldIndex < 0 || e.FieldIndex >= len(fields) {
		// Missing type metadata contributes nothing.
		return
	}
	fieldName := fields[e.FieldIndex].Name

	if ms, ok := e.Expr.(*resolved.MakeStruct); ok {
		// Field access on a struct literal: only the accessed field's
		// sub-expression matters, the other fields are bypassed.
		for i, fld := range ms.Typ.Fields {
			if fld.Name == fieldName && i < len(ms.FieldExprs) {
				f.result = append(f.result, directParents(ms.FieldExprs[i])...)
				return
			}
		}
		return
	}

	// Field access on any other struct-valued expression: re-tag the
	// struct's parents with the accessed field as a dotted name segment.
	start := len(f.result)
	f.visit(e.Expr)
	for i := start; i < len(f.result); i++ {
		base := f.result[i]
		f.result[i] = resolved.Column{
			ID:    base.ID,
			Table: base.Table,
			Name:  base.Name + "." + fieldName,
			Type:  e.Typ,
		}
	}
}
