// Package lineage computes data lineage for resolved SQL statements.
//
// Given a resolved statement tree from pkg/resolved (the output of an
// external SQL semantic analyzer), it determines which tables the
// statement reads and writes, and for every output or written column,
// which terminal source columns it ultimately derives from - tracing
// through expressions, joins, subqueries, CTEs, set operations and
// struct-valued data.
//
// The package performs pure graph analysis over an in-memory tree: no
// parsing, no catalog access, no I/O. Every extraction call owns its own
// state, so concurrent extraction of independent statements needs no
// synchronization.
//
// # Basic Usage
//
//	tl := lineage.ExtractTableLineage(stmt)
//	fmt.Println(tl.StatementType, tl.Sources.Sorted())
//
//	for _, cl := range lineage.ExtractColumnLineage(stmt) {
//	    fmt.Printf("%s <- %v\n", cl.Target, cl.Parents.Sorted())
//	}
package lineage
