package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCmd_Use(t *testing.T) {
	assert.Equal(t, "compare [tree]", compareCmd.Use)
}

func TestCompareCmd_Short(t *testing.T) {
	assert.Equal(t, "Time both materializers and diff their output", compareCmd.Short)
}

func TestCompareCmd_ErrorsWithoutServices(t *testing.T) {
	clearServices()

	_, err := runCmd(t, "compare", "nodes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestCompareCmd_Tree(t *testing.T) {
	setupTestServices(t).seedChain(t)

	out, err := runCmd(t, "compare", "nodes")

	require.NoError(t, err)
	assert.Contains(t, out, "(nodes, 3 records)")
	assert.Contains(t, out, "naive")
	assert.Contains(t, out, "indexed")
	assert.Contains(t, out, "Outputs are equivalent.")
}

func TestCompareCmd_JSON(t *testing.T) {
	setupTestServices(t).seedChain(t)

	out, err := runCmd(t, "compare", "nodes", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got["runId"])
	assert.Equal(t, "nodes", got["tree"])
	equivalence, ok := got["equivalence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, equivalence["equal"])
}

func TestCompareCmd_Sample(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "compare", "--sample", "300", "--seed", "9")

	require.NoError(t, err)
	assert.Contains(t, out, "(sample, 305 records)")
	assert.Contains(t, out, "Outputs are equivalent.")
}

func TestCompareCmd_RequiresTreeName(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "compare")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a tree name is required")
}

func TestCompareCmd_UnknownTree(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "compare", "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compare failed")
}
