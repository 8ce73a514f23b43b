package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCmd_Use(t *testing.T) {
	assert.Equal(t, "generate", generateCmd.Use)
}

func TestGenerateCmd_Defaults(t *testing.T) {
	flags := generateCmd.Flags()
	assert.Equal(t, "SampleEntity", flags.Lookup("entity").DefValue)
	assert.Equal(t, "1000", flags.Lookup("count").DefValue)
	assert.Equal(t, "1", flags.Lookup("seed").DefValue)
}

func TestGenerateCmd_ErrorsWithoutServices(t *testing.T) {
	clearServices()

	_, err := runCmd(t, "generate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestGenerateCmd_StoresRecords(t *testing.T) {
	stores := setupTestServices(t)

	out, err := runCmd(t, "generate", "-e", "Custom", "-n", "10", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 15 records for Custom.")

	records, err := stores.records.Load(context.Background(), "Custom")
	require.NoError(t, err)
	assert.Len(t, records, 15)
}

func TestGenerateCmd_RejectsSmallCount(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "generate", "-n", "2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate failed")
}

func TestGenerateCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "generate", "extra")

	assert.Error(t, err)
}
