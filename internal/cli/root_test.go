package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqllineage/internal/testutil"
)

const queryStmtJSON = `{
  "kind": "query_stmt",
  "query": {
    "kind": "table_scan",
    "column_list": [
      {"id": 1, "table": "orders", "name": "order_id", "type": {"name": "INT64"}},
      {"id": 2, "table": "orders", "name": "amount", "type": {"name": "DOUBLE"}}
    ],
    "table_name": "orders"
  },
  "output_columns": [
    {"name": "order_id", "column": {"id": 1, "table": "orders", "name": "order_id", "type": {"name": "INT64"}}},
    {"name": "amount", "column": {"id": 2, "table": "orders", "name": "amount", "type": {"name": "DOUBLE"}}}
  ]
}`

func writeStatementFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stmt.json")
	require.NoError(t, os.WriteFile(path, []byte(queryStmtJSON), 0o644))
	return path
}

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	slog.SetDefault(testutil.NewTestLogger(t))

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTableCommandText(t *testing.T) {
	out, err := runCommand(t, "", "table", writeStatementFile(t), "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Statement Type: SELECT")
	assert.Contains(t, out, "Target: (none - SELECT query)")
	assert.Contains(t, out, "  - orders")
}

func TestTableCommandJSON(t *testing.T) {
	out, err := runCommand(t, "", "table", writeStatementFile(t), "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"statement_type": "SELECT"`)
	assert.Contains(t, out, `"orders"`)
}

func TestColumnCommandText(t *testing.T) {
	out, err := runCommand(t, "", "column", writeStatementFile(t), "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "<- orders.order_id")
	assert.Contains(t, out, "<- orders.amount")
}

func TestColumnCommandStdin(t *testing.T) {
	out, err := runCommand(t, queryStmtJSON, "column", "-", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"column": "order_id"`)
}

func TestColumnCommandDefaultOutputIsTable(t *testing.T) {
	out, err := runCommand(t, "", "column", writeStatementFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "(2 columns)")
}

func TestTableCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "", "table", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open statement file")
}

func TestTableCommandBadStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind": "drop_stmt"}`), 0o644))

	_, err := runCommand(t, "", "table", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown statement kind")
}

func TestColumnCommandUnknownOutputFormat(t *testing.T) {
	_, err := runCommand(t, "", "column", writeStatementFile(t), "-o", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
