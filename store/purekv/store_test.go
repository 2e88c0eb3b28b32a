package purekv

import (
	"os"
	"strconv"
	"testing"

	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs running pure-kv server, e.g. PUREKV_ADDR=0.0.0.0:6666
func TestPureKvStore(t *testing.T) {
	address := os.Getenv("PUREKV_ADDR")
	if address == "" {
		t.Skip("PUREKV_ADDR is not set")
	}
	timeout, err := strconv.Atoi(os.Getenv("PUREKV_TIMEOUT"))
	if err != nil {
		timeout = 500
	}
	s := New(Config{Address: address, Timeout: timeout})
	require.NoError(t, s.Start())
	defer s.Close()
	defer s.Clear()

	hasher, err := lsh.New(2, 2, 3)
	require.NoError(t, err)
	id, err := store.Put(s, hasher, "", []float64{1, -1})
	require.NoError(t, err)

	vec, err := s.GetVector(id)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1}, vec)

	ids, data, hashes, err := store.Collect(s)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
	assert.Len(t, data, 1)
	assert.Len(t, hashes, 1)

	require.NoError(t, s.Clear())
	_, err = s.GetVector(id)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Clear(), "clearing empty buckets must succeed")
	ids, _, _, err = store.Collect(s)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestKeysIteratorClose(t *testing.T) {
	it := &KeysIterator{bucketName: vecsBucket}
	assert.NoError(t, it.Close())
	assert.NoError(t, it.Close())
	_, ok := it.Next()
	assert.False(t, ok)
}
