package cmd

import (
	"path/filepath"
	"testing"

	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVec(t *testing.T) {
	vec, err := parseVec("1, -2.5,3e2,")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 300}, vec)

	_, err = parseVec("1,x")
	assert.Error(t, err)
	_, err = parseVec(" , ")
	assert.Error(t, err)
}

func TestNewHasher(t *testing.T) {
	config := cm.IndexConfig{NTables: 3, HashLength: 4, Seed: 5}
	h1, err := newHasher(config, 6)
	require.NoError(t, err)
	h2, err := newHasher(config, 6)
	require.NoError(t, err)
	assert.Equal(t, lsh.Config{Dims: 6, NTables: 3, HashLength: 4}, h1.Config())
	assert.Equal(t, h1.Planes(), h2.Planes(), "seeded hash families must be equal")

	config.Dims = 7
	_, err = newHasher(config, 6)
	assert.Error(t, err)

	_, err = newHasher(cm.IndexConfig{NTables: 0, HashLength: 4}, 6)
	assert.ErrorIs(t, err, lsh.ErrInvalidArgument)
}

func TestLoadHasher(t *testing.T) {
	hasher, err := newHasher(cm.IndexConfig{NTables: 2, HashLength: 2, Seed: 1}, 3)
	require.NoError(t, err)
	raw, err := hasher.Dump()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "index.gob")
	require.NoError(t, lsh.DumpBytesToFile(raw, path))

	loaded, err := loadHasher(path)
	require.NoError(t, err)
	assert.Equal(t, hasher.Planes(), loaded.Planes())

	_, err = loadHasher(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	s, closeStore, err := openStore(cm.StoreConfig{Kind: cm.StoreKV})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &kv.KVStore{}, s)
}

func TestCheckQueryFlags(t *testing.T) {
	cases := map[string]struct {
		kind, data, vec string
		row             int
		ok              bool
	}{
		"VecWithData":    {cm.StoreKV, "ds.hdf5", "1,2", -1, true},
		"RowWithData":    {cm.StoreKV, "ds.hdf5", "", 3, true},
		"VecPureKV":      {cm.StorePureKV, "", "1,2", -1, true},
		"NoQuery":        {cm.StoreKV, "ds.hdf5", "", -1, false},
		"RowWithoutData": {cm.StorePureKV, "", "", 0, false},
		"KVWithoutData":  {cm.StoreKV, "", "1,2", -1, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := checkQueryFlags(c.kind, c.data, c.vec, c.row)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCheckBenchFlags(t *testing.T) {
	assert.NoError(t, checkBenchFlags(10, 0))
	assert.NoError(t, checkBenchFlags(1, 100))
	assert.Error(t, checkBenchFlags(0, 0))
	assert.Error(t, checkBenchFlags(10, -1))
}
