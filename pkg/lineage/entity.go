package lineage

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqllineage/pkg/resolved"
)

// StatementType classifies a resolved statement for table lineage.
type StatementType string

// Statement types.
const (
	StatementSelect                 StatementType = "SELECT"
	StatementCreateTableAsSelect    StatementType = "CREATE_TABLE_AS_SELECT"
	StatementCreateView             StatementType = "CREATE_VIEW"
	StatementCreateMaterializedView StatementType = "CREATE_MATERIALIZED_VIEW"
	StatementInsert                 StatementType = "INSERT"
	StatementUpdate                 StatementType = "UPDATE"
	StatementMerge                  StatementType = "MERGE"
	StatementDelete                 StatementType = "DELETE"
	StatementUnknown                StatementType = "UNKNOWN"
)

// TableEntity is a fully qualified table name. Equality is exact-string:
// qualified names (project.dataset.table style) are opaque tokens.
type TableEntity struct {
	Name string
}

// SimpleName returns the last dot-delimited segment of the table name.
func (t TableEntity) SimpleName() string {
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

func (t TableEntity) String() string { return t.Name }

// TableSet is a set of table entities.
type TableSet map[TableEntity]struct{}

// Add inserts a table into the set. Empty names are ignored.
func (s TableSet) Add(t TableEntity) {
	if t.Name != "" {
		s[t] = struct{}{}
	}
}

// Contains reports whether the set holds t.
func (s TableSet) Contains(t TableEntity) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the tables as a lexicographically sorted slice.
func (s TableSet) Sorted() []TableEntity {
	tables := make([]TableEntity, 0, len(s))
	for t := range s {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables
}

// ColumnEntity identifies a column within a table. Column names compare
// case-insensitively (SQL column identifiers are case-insensitive in the
// dialects this targets); table names compare exactly.
type ColumnEntity struct {
	Table string
	Name  string
}

func columnEntityOf(c resolved.Column) ColumnEntity {
	return ColumnEntity{Table: c.Table, Name: c.Name}
}

// Equal reports whether two entities identify the same column.
func (c ColumnEntity) Equal(o ColumnEntity) bool {
	return c.Table == o.Table && strings.EqualFold(c.Name, o.Name)
}

// key is the set identity of the entity: exact table, folded name.
func (c ColumnEntity) key() string {
	return c.Table + "\x00" + strings.ToLower(c.Name)
}

func (c ColumnEntity) String() string { return c.Table + "." + c.Name }

// ColumnSet is a set of column entities with case-insensitive column name
// identity.
type ColumnSet map[string]ColumnEntity

// NewColumnSet builds a set from the given entities.
func NewColumnSet(cols ...ColumnEntity) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s.Add(c)
	}
	return s
}

// Add inserts a column into the set.
func (s ColumnSet) Add(c ColumnEntity) { s[c.key()] = c }

// Contains reports whether the set holds c.
func (s ColumnSet) Contains(c ColumnEntity) bool {
	_, ok := s[c.key()]
	return ok
}

// Equal reports whether two sets hold the same columns.
func (s ColumnSet) Equal(o ColumnSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the columns sorted lexicographically by (table, column).
func (s ColumnSet) Sorted() []ColumnEntity {
	cols := make([]ColumnEntity, 0, len(s))
	for _, c := range s {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].Table != cols[j].Table {
			return cols[i].Table < cols[j].Table
		}
		return cols[i].Name < cols[j].Name
	})
	return cols
}

// ColumnLineage records the terminal source columns one target column
// derives from. An empty parent set means the column is a literal or
// constant with no data-dependent origin.
type ColumnLineage struct {
	Target  ColumnEntity
	Parents ColumnSet
}

// key collapses identical (target, parents) pairs in result sets.
func (l ColumnLineage) key() string {
	var b strings.Builder
	b.WriteString(l.Target.key())
	for _, p := range l.Parents.Sorted() {
		b.WriteByte('|')
		b.WriteString(p.key())
	}
	return b.String()
}

// Equal reports whether two lineage records have the same target and
// parent set.
func (l ColumnLineage) Equal(o ColumnLineage) bool {
	return l.Target.Equal(o.Target) && l.Parents.Equal(o.Parents)
}

// TableLineage records the tables a statement reads and writes. Target is
// nil for pure SELECT statements.
type TableLineage struct {
	Target        *TableEntity
	Sources       TableSet
	StatementType StatementType
}
