package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"engine.strategy": "naive"}, map[string]any{"engine.max_depth": 10})

	assert.Equal(t, "naive", store.GetString("engine.strategy"))
	assert.Equal(t, 10, store.GetInt("engine.max_depth"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"s":   "text",
		"i":   int64(7),
		"f":   float64(3),
		"bad": []string{"x"},
	})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 3, store.GetInt("f"))

	assert.Empty(t, store.GetString("bad"))
	assert.Zero(t, store.GetInt("bad"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"tree.b.entity":       "B",
		"tree.a.entity":       "A",
		"tree.a.parent_field": "P",
		"engine.strategy":     "naive",
	})

	assert.Equal(t, []string{"tree.a.entity", "tree.a.parent_field", "tree.b.entity"}, store.Keys("tree."))
	assert.Empty(t, store.Keys("nothing."))
}

func TestConfigStore_Unset(t *testing.T) {
	store := NewConfigStore(map[string]any{"tree.a.entity": "A"})

	require.NoError(t, store.Unset("tree.a.entity"))
	_, ok := store.Get("tree.a.entity")
	assert.False(t, ok)

	assert.NoError(t, store.Unset("missing"))
}
