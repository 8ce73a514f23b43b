package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmd_Use(t *testing.T) {
	assert.Equal(t, "build [tree]", buildCmd.Use)
}

func TestBuildCmd_Short(t *testing.T) {
	assert.Equal(t, "Materialize a tree", buildCmd.Short)
}

func TestBuildCmd_Flags(t *testing.T) {
	for _, name := range []string{"strategy", "json", "plain", "paths", "sample", "seed"} {
		assert.NotNil(t, buildCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "s", buildCmd.Flags().Lookup("strategy").Shorthand)
}

func TestBuildCmd_ErrorsWithoutServices(t *testing.T) {
	clearServices()

	_, err := runCmd(t, "build", "nodes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestBuildCmd_RendersTree(t *testing.T) {
	setupTestServices(t).seedChain(t)

	out, err := runCmd(t, "build", "nodes", "--plain")

	require.NoError(t, err)
	assert.Contains(t, out, "A\n")
	assert.Contains(t, out, "└─ B (added)\n")
	assert.Contains(t, out, "  └─ C\n")
	assert.Contains(t, out, "3 of 3 records materialized: 1 root(s), max depth 3, 0 deleted, 0 excluded, 0 orphan(s)")
}

func TestBuildCmd_Paths(t *testing.T) {
	setupTestServices(t).seedChain(t)

	for _, strategy := range []string{"naive", "indexed"} {
		out, err := runCmd(t, "build", "nodes", "--paths", "--strategy", strategy)

		require.NoError(t, err)
		assert.Equal(t, "A\nA/B\nA/B/C\n", out)
	}
}

func TestBuildCmd_JSON(t *testing.T) {
	setupTestServices(t).seedChain(t)

	out, err := runCmd(t, "build", "nodes", "--json")
	require.NoError(t, err)

	var got jsonForest
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Rows, 3)
	assert.Equal(t, []string{"A", "B", "C"}, got.Rows[2].Path)
	assert.Equal(t, "C", got.Rows[2].Key)
	assert.Equal(t, 3, got.Rows[2].Depth)
	assert.Equal(t, "added", got.Rows[1].State)
	assert.Equal(t, "B", got.Rows[1].Fields["Id"].Text())
	assert.Equal(t, 3, got.Stats.Materialized)
}

func TestBuildCmd_UnknownStrategy(t *testing.T) {
	setupTestServices(t).seedChain(t)

	_, err := runCmd(t, "build", "nodes", "--strategy", "quantum")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported strategy")
}

func TestBuildCmd_RequiresTreeName(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "build")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a tree name is required")
}

func TestBuildCmd_UnknownTree(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "build", "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build failed")
	assert.Contains(t, err.Error(), "not found")
}

func TestBuildCmd_Sample(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "build", "--sample", "20", "--seed", "4", "--paths")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "ROOT1")
	assert.Contains(t, lines, "SPECIAL3")
	assert.Contains(t, lines, "SPECIAL4")
}

func TestBuildCmd_SampleRejectsTreeName(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "build", "nodes", "--sample", "20")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestParseStrategy(t *testing.T) {
	s, err := parseStrategy("")
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = parseStrategy("naive")
	require.NoError(t, err)
	assert.Equal(t, "naive", s.String())

	_, err = parseStrategy("fast")
	assert.Error(t, err)
}
