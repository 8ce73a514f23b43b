package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

func TestRecordsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(recordsCmd.Commands()))
	for _, cmd := range recordsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "list")
	assert.Contains(t, names, "import")
	assert.Contains(t, names, "export")
}

func TestRecordsImportCmd_Use(t *testing.T) {
	assert.Equal(t, "import [entity] [file]", recordsImportCmd.Use)
}

func TestRecordsListCmd_ErrorsWithoutServices(t *testing.T) {
	clearServices()

	_, err := runCmd(t, "records", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRecordsListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "records", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No record sets stored.")
}

func TestRecordsListCmd_ListsEntities(t *testing.T) {
	setupTestServices(t).seedChain(t)

	out, err := runCmd(t, "records", "list")

	require.NoError(t, err)
	assert.Equal(t, "Nodes\n", out)
}

func TestRecordsImportCmd_JSON(t *testing.T) {
	stores := setupTestServices(t)
	path := filepath.Join(t.TempDir(), "nodes.json")
	content := `[
  {"state": 2, "fields": {"Id": "A", "ParentId": ""}},
  {"state": 8, "fields": {"Id": "B", "ParentId": "A"}},
  {"fields": {"Id": 3, "ParentId": null}}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := runCmd(t, "records", "import", "Imported", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 records into Imported.")

	records, err := stores.records.Load(context.Background(), "Imported")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.RowDeleted, records[1].State)
	assert.Equal(t, domain.RowUnchanged, records[2].State)
	assert.Equal(t, domain.IntValue(3), records[2].Fields["Id"])
	assert.True(t, records[2].Fields["ParentId"].IsNull())
}

func TestRecordsExportImport_CBOR(t *testing.T) {
	stores := setupTestServices(t)
	stores.seedChain(t)
	path := filepath.Join(t.TempDir(), "nodes.cbor")

	out, err := runCmd(t, "records", "export", "Nodes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 records from Nodes.")

	_, err = runCmd(t, "records", "import", "Copy", path)
	require.NoError(t, err)

	want, err := stores.records.Load(context.Background(), "Nodes")
	require.NoError(t, err)
	got, err := stores.records.Load(context.Background(), "Copy")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordsImportCmd_Errors(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()

	_, err := runCmd(t, "records", "import", "X", filepath.Join(dir, "nodes.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot infer snapshot format")

	_, err = runCmd(t, "records", "import", "X", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open snapshot")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"state": 3, "fields": {}}]`), 0o600))
	_, err = runCmd(t, "records", "import", "X", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row state 3")

	_, err = runCmd(t, "records", "import", "X")
	assert.Error(t, err)
}

func TestRecordsExportCmd_UnknownEntity(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "records", "export", "Ghost", filepath.Join(t.TempDir(), "ghost.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load Ghost")
}
