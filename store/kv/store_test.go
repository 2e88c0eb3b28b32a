package kv

import (
	"testing"

	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKvStore(t *testing.T) {
	store := NewKVStore()

	t.Run("SetVector", func(t *testing.T) {
		vec := []float64{1, 2}
		require.NoError(t, store.SetVector("0", vec))
		vecReturned, err := store.GetVector("0")
		require.NoError(t, err)
		assert.Equal(t, vec, vecReturned)
		require.NoError(t, store.SetVector("1", []float64{3, 4}))
	})

	t.Run("SetHash", func(t *testing.T) {
		code := lsh.Code{{1, 0}, {0, 1}}
		require.NoError(t, store.SetHash("0", code))
		codeReturned, err := store.GetHash("0")
		require.NoError(t, err)
		assert.Equal(t, code, codeReturned)
		_, err = store.GetHash("1")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("IteratorOrder", func(t *testing.T) {
		// overwriting keeps the original position
		require.NoError(t, store.SetVector("0", []float64{5, 6}))
		require.NoError(t, store.SetVector("2", []float64{7, 8}))
		it, err := store.Iterator()
		require.NoError(t, err)
		var ids []string
		for {
			id, ok := it.Next()
			if !ok {
				break
			}
			ids = append(ids, id)
		}
		assert.Equal(t, []string{"0", "1", "2"}, ids)
		_, ok := it.Next()
		assert.False(t, ok, "Iterator not closed, but it should")
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear())
		_, err := store.GetVector("0")
		assert.ErrorIs(t, err, ErrKeyNotFound, "Vector should not exist in a store")
		it, err := store.Iterator()
		require.NoError(t, err)
		_, ok := it.Next()
		assert.False(t, ok)
	})
}
