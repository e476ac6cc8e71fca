package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqllineage/pkg/lineage"
)

func sampleTableLineage() lineage.TableLineage {
	sources := make(lineage.TableSet)
	sources.Add(lineage.TableEntity{Name: "orders"})
	sources.Add(lineage.TableEntity{Name: "customers"})
	return lineage.TableLineage{
		Target:        &lineage.TableEntity{Name: "report"},
		Sources:       sources,
		StatementType: lineage.StatementCreateTableAsSelect,
	}
}

func sampleColumnLineages() []lineage.ColumnLineage {
	return []lineage.ColumnLineage{
		{
			Target: lineage.ColumnEntity{Table: "report", Name: "total"},
			Parents: lineage.NewColumnSet(
				lineage.ColumnEntity{Table: "orders", Name: "amount"},
				lineage.ColumnEntity{Table: "orders", Name: "tax"},
			),
		},
		{
			Target:  lineage.ColumnEntity{Table: "report", Name: "version"},
			Parents: lineage.NewColumnSet(),
		},
	}
}

func TestTableLineageText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableLineageText(&buf, sampleTableLineage()))

	want := "Statement Type: CREATE_TABLE_AS_SELECT\n" +
		"Target: report\n" +
		"Sources:\n" +
		"  - customers\n" +
		"  - orders\n"
	assert.Equal(t, want, buf.String())
}

func TestTableLineageTextSelectWithoutSources(t *testing.T) {
	var buf bytes.Buffer
	tl := lineage.TableLineage{
		Sources:       make(lineage.TableSet),
		StatementType: lineage.StatementSelect,
	}
	require.NoError(t, TableLineageText(&buf, tl))

	out := buf.String()
	assert.Contains(t, out, "Target: (none - SELECT query)")
	assert.Contains(t, out, "  (no sources)")
}

func TestTableLineageJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableLineageJSON(&buf, sampleTableLineage()))

	var doc struct {
		Target        *string  `json:"target"`
		Sources       []string `json:"sources"`
		StatementType string   `json:"statement_type"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.NotNil(t, doc.Target)
	assert.Equal(t, "report", *doc.Target)
	assert.Equal(t, []string{"customers", "orders"}, doc.Sources)
	assert.Equal(t, "CREATE_TABLE_AS_SELECT", doc.StatementType)
}

func TestTableLineageJSONNullTarget(t *testing.T) {
	var buf bytes.Buffer
	tl := lineage.TableLineage{Sources: make(lineage.TableSet), StatementType: lineage.StatementSelect}
	require.NoError(t, TableLineageJSON(&buf, tl))
	assert.Contains(t, buf.String(), `"target": null`)
	assert.Contains(t, buf.String(), `"sources": []`)
}

func TestColumnLineagesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesText(&buf, sampleColumnLineages()))

	out := buf.String()
	assert.Contains(t, out, "report.total\n")
	assert.Contains(t, out, "    <- orders.amount\n")
	assert.Contains(t, out, "    <- orders.tax\n")
	assert.Contains(t, out, "    (no parent columns - literal or constant)\n")
}

func TestColumnLineagesTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesText(&buf, nil))
	assert.Equal(t, "(no column lineage)\n", buf.String())
}

func TestColumnLineagesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesJSON(&buf, sampleColumnLineages()))

	var docs []struct {
		Target struct {
			Table  string `json:"table"`
			Column string `json:"column"`
		} `json:"target"`
		Parents []struct {
			Table  string `json:"table"`
			Column string `json:"column"`
		} `json:"parents"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "total", docs[0].Target.Column)
	require.Len(t, docs[0].Parents, 2)
	assert.Equal(t, "amount", docs[0].Parents[0].Column)
	assert.Empty(t, docs[1].Parents)
}

func TestColumnLineagesMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesMarkdown(&buf, sampleColumnLineages()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Target Table | Target Column | Parents |", lines[0])
	assert.Equal(t, "| --- | --- | --- |", lines[1])
	assert.Equal(t, "| report | total | orders.amount, orders.tax |", lines[2])
	assert.Equal(t, "| report | version |  |", lines[3])
}

func TestColumnLineagesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesTable(&buf, sampleColumnLineages()))

	out := buf.String()
	assert.Contains(t, out, "TARGET TABLE")
	assert.Contains(t, out, "orders.amount, orders.tax")
	assert.Contains(t, out, "(2 columns)")
}

func TestColumnLineagesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ColumnLineagesTable(&buf, nil))
	assert.Equal(t, "(no column lineage)\n", buf.String())
}

func TestSourcesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SourcesTable(&buf, sampleTableLineage()))

	out := buf.String()
	assert.Contains(t, out, "STATEMENT")
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "orders")
}

func TestSourcesTableNoSources(t *testing.T) {
	var buf bytes.Buffer
	tl := lineage.TableLineage{Sources: make(lineage.TableSet), StatementType: lineage.StatementSelect}
	require.NoError(t, SourcesTable(&buf, tl))

	out := buf.String()
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "(no sources)")
}
