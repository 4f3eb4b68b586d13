package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"root":                   "/docs",
		"top_k":                  int64(25),
		"workers":                4,
		"files_per_second":       2.5,
		"recursive":              true,
		"keywords.min_graphemes": float64(5),
	})

	assert.Equal(t, "/docs", store.GetString("root"))
	assert.Equal(t, 25, store.GetInt("top_k"))
	assert.Equal(t, 4, store.GetInt("workers"))
	assert.Equal(t, 5, store.GetInt("keywords.min_graphemes"))
	assert.InDelta(t, 2.5, store.GetFloat("files_per_second"), 1e-9)
	assert.InDelta(t, 4.0, store.GetFloat("workers"), 1e-9)
	assert.True(t, store.GetBool("recursive"))
}

func TestConfigStore_WrongTypesAndMissing(t *testing.T) {
	store := NewConfigStore(map[string]any{"root": 42, "top_k": "many", "recursive": "yes"})

	assert.Equal(t, "", store.GetString("root"))
	assert.Equal(t, 0, store.GetInt("top_k"))
	assert.Equal(t, 0.0, store.GetFloat("top_k"))
	assert.False(t, store.GetBool("recursive"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetLoadPath(t *testing.T) {
	store := NewConfigStore(nil)
	store.Set("output", "out.json")

	assert.NoError(t, store.Load())
	assert.Equal(t, "out.json", store.GetString("output"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Set("workers", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("workers")
		}()
	}
	wg.Wait()

	_, ok := store.Get("workers")
	assert.True(t, ok)
}
