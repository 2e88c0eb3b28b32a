package store_test

import (
	"testing"

	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
	"github.com/gasparian/rp-lsh-go/store/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndCollect(t *testing.T) {
	hasher, err := lsh.NewFromPlanes([][][]float64{
		{{1, 0, 0}, {0, 1, 0}},
		{{0, 0, 1}, {1, 1, 1}},
	})
	require.NoError(t, err)
	s := kv.NewKVStore()

	vecs := [][]float64{{1, 2, 3}, {-1, 0, 2}, {0.5, 0.5, -4}}
	ids := make([]string, len(vecs))
	for i, vec := range vecs {
		id := ""
		if i == 0 {
			id = "first"
		}
		ids[i], err = store.Put(s, hasher, id, vec)
		require.NoError(t, err)
	}
	assert.Equal(t, "first", ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, ids[1], ids[2])

	collectedIds, data, hashes, err := store.Collect(s)
	require.NoError(t, err)
	assert.Equal(t, ids, collectedIds)
	assert.Equal(t, vecs, data)
	expected, err := hasher.Hashing(vecs)
	require.NoError(t, err)
	assert.Equal(t, expected, hashes)

	results, err := hasher.QueryNeighbours(vecs[1:2], data, hashes, 1)
	require.NoError(t, err)
	require.Len(t, results[0].Indices, 1)
	assert.Equal(t, ids[1], collectedIds[results[0].Indices[0]])
}

func TestPutWrongDims(t *testing.T) {
	hasher, err := lsh.New(3, 1, 1)
	require.NoError(t, err)
	s := kv.NewKVStore()
	_, err = store.Put(s, hasher, "", []float64{1})
	assert.ErrorIs(t, err, lsh.ErrInvalidArgument)
	_, data, _, err := store.Collect(s)
	require.NoError(t, err)
	assert.Empty(t, data)
}

type closingIterator struct {
	ids    []string
	closed bool
}

func (it *closingIterator) Next() (string, bool) {
	if len(it.ids) == 0 {
		return "", false
	}
	id := it.ids[0]
	it.ids = it.ids[1:]
	return id, true
}

func (it *closingIterator) Close() error {
	it.closed = true
	return nil
}

// brokenStore lists ids it has no vectors for
type brokenStore struct {
	*kv.KVStore
	it *closingIterator
}

func (s *brokenStore) Iterator() (store.Iterator, error) {
	return s.it, nil
}

func TestCollectClosesIterator(t *testing.T) {
	s := &brokenStore{
		KVStore: kv.NewKVStore(),
		it:      &closingIterator{ids: []string{"missing", "other"}},
	}
	_, _, _, err := store.Collect(s)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	assert.True(t, s.it.closed, "iterator must be closed on early return")
	assert.Equal(t, []string{"other"}, s.it.ids)
}
