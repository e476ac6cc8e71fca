package resolved

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementRoundTrip(t *testing.T) {
	title := Column{ID: 1, Table: "catalog", Name: "title", Type: Type{Name: "STRING"}}
	price := Column{ID: 2, Table: "catalog", Name: "price", Type: Type{Name: "INT64"}}
	out := Column{ID: 3, Name: "t", Type: Type{Name: "STRING"}}

	stmt := &CreateTableAsSelectStmt{
		NamePath: []string{"project", "report"},
		Query: &ProjectScan{
			ColumnList: []Column{out},
			Input: &FilterScan{
				ColumnList: []Column{title, price},
				Input:      &TableScan{ColumnList: []Column{title, price}, TableName: "catalog"},
				Filter: &FunctionCall{
					Typ:  Type{Name: "BOOL"},
					Name: "$greater",
					Args: []Expr{
						&ColumnRef{Typ: price.Type, Column: price},
						&Literal{Typ: Type{Name: "INT64"}, Value: "100"},
					},
				},
			},
			Exprs: []ComputedColumn{{
				Column: out,
				Expr: &FunctionCall{
					Typ:  Type{Name: "STRING"},
					Name: "upper",
					Args: []Expr{&ColumnRef{Typ: title.Type, Column: title}},
				},
			}},
		},
		OutputColumns: []OutputColumn{{Name: "t", Column: out}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeStatement(&buf, stmt))

	decoded, err := DecodeStatement(&buf)
	require.NoError(t, err)
	assert.Equal(t, stmt, decoded)
}

func TestStatementRoundTripMerge(t *testing.T) {
	k := Column{ID: 1, Table: "t", Name: "k", Type: Type{Name: "INT64"}}
	v := Column{ID: 2, Table: "t", Name: "v", Type: Type{Name: "STRING"}}
	sk := Column{ID: 3, Table: "src", Name: "k", Type: Type{Name: "INT64"}}
	sv := Column{ID: 4, Table: "src", Name: "v", Type: Type{Name: "STRING"}}

	stmt := &MergeStmt{
		TableScan: &TableScan{ColumnList: []Column{k, v}, TableName: "t"},
		FromScan:  &TableScan{ColumnList: []Column{sk, sv}, TableName: "src"},
		MergeExpr: &FunctionCall{
			Typ:  Type{Name: "BOOL"},
			Name: "$equal",
			Args: []Expr{&ColumnRef{Typ: k.Type, Column: k}, &ColumnRef{Typ: sk.Type, Column: sk}},
		},
		WhenClauses: []MergeWhen{
			{
				Action:      MergeActionUpdate,
				UpdateItems: []UpdateItem{{Target: v, Value: &ColumnRef{Typ: sv.Type, Column: sv}}},
			},
			{
				Action:        MergeActionInsert,
				InsertColumns: []Column{k, v},
				InsertRow:     []Expr{&ColumnRef{Typ: sk.Type, Column: sk}, &ColumnRef{Typ: sv.Type, Column: sv}},
			},
			{Action: MergeActionDelete},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeStatement(&buf, stmt))

	decoded, err := DecodeStatement(&buf)
	require.NoError(t, err)
	assert.Equal(t, stmt, decoded)
}

func TestDecodeStatementFromAnalyzerOutput(t *testing.T) {
	// Hand-written analyzer output, not produced by our encoder.
	input := `{
	  "kind": "query_stmt",
	  "query": {
	    "kind": "with_scan",
	    "column_list": [{"id": 2, "table": "c", "name": "id", "type": {"name": "INT64"}}],
	    "entries": [
	      {
	        "name": "c",
	        "subquery": {
	          "kind": "table_scan",
	          "column_list": [{"id": 1, "table": "t", "name": "id", "type": {"name": "INT64"}}],
	          "table_name": "t"
	        }
	      }
	    ],
	    "query": {
	      "kind": "with_ref_scan",
	      "column_list": [{"id": 2, "table": "c", "name": "id", "type": {"name": "INT64"}}],
	      "name": "c"
	    }
	  },
	  "output_columns": [
	    {"name": "id", "column": {"id": 2, "table": "c", "name": "id", "type": {"name": "INT64"}}}
	  ]
	}`

	stmt, err := DecodeStatement(strings.NewReader(input))
	require.NoError(t, err)

	query, ok := stmt.(*QueryStmt)
	require.True(t, ok, "expected *QueryStmt, got %T", stmt)

	with, ok := query.Query.(*WithScan)
	require.True(t, ok, "expected *WithScan, got %T", query.Query)
	require.Len(t, with.Entries, 1)
	assert.Equal(t, "c", with.Entries[0].Name)

	def, ok := with.Entries[0].Subquery.(*TableScan)
	require.True(t, ok, "expected *TableScan, got %T", with.Entries[0].Subquery)
	assert.Equal(t, "t", def.TableName)
}

func TestDecodeStatementUnknownKind(t *testing.T) {
	_, err := DecodeStatement(strings.NewReader(`{"kind": "drop_stmt"}`))
	var kindErr *UnknownKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, "statement", kindErr.Node)
	assert.Equal(t, "drop_stmt", kindErr.Kind)
}

func TestDecodeStatementMissingKind(t *testing.T) {
	_, err := DecodeStatement(strings.NewReader(`{"query": null}`))
	var kindErr *UnknownKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Empty(t, kindErr.Kind)
}

func TestDecodeNestedUnknownExprKind(t *testing.T) {
	input := `{
	  "kind": "query_stmt",
	  "query": {
	    "kind": "project_scan",
	    "column_list": [],
	    "input": null,
	    "exprs": [{"column": {"id": 1}, "expr": {"kind": "lambda"}}]
	  }
	}`
	_, err := DecodeStatement(strings.NewReader(input))
	var kindErr *UnknownKindError
	require.True(t, errors.As(err, &kindErr), "expected UnknownKindError, got %v", err)
	assert.Equal(t, "expression", kindErr.Node)
	assert.Equal(t, "lambda", kindErr.Kind)
}

func TestDecodeStatementNull(t *testing.T) {
	stmt, err := DecodeStatement(strings.NewReader("null"))
	require.NoError(t, err)
	assert.Nil(t, stmt)
}

func TestColumnKey(t *testing.T) {
	c := Column{ID: 7, Table: "users", Name: "address.city"}
	assert.Equal(t, "users.address.city#7", c.Key())
}

func TestTypeIsStruct(t *testing.T) {
	assert.False(t, Type{Name: "STRING"}.IsStruct())
	assert.True(t, Type{Name: "STRUCT", Fields: []StructField{{Name: "a"}}}.IsStruct())
}
