package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := GetNewLogger()
	logger.Warn.SetOutput(&buf)
	logger.Info.SetOutput(&buf)
	logger.Err.SetOutput(&buf)
	logger.Warn.Println("Test Warn")
	logger.Info.Println("Test Info")
	logger.Err.Println("Test Err")
	out := buf.String()
	assert.Contains(t, out, "[ Warn ] ")
	assert.Contains(t, out, "[ Info ] ")
	assert.Contains(t, out, "[ Error ] ")
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigYamlAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
index:
  n_tables: 4
  hash_length: 12
  seed: 7
query:
  neighbours: 25
store:
  kind: purekv
  address: 0.0.0.0:6666
`)
	require.NoError(t, os.WriteFile(path, raw, 0600))
	t.Setenv("HASH_LENGTH", "16")
	t.Setenv("WORKERS", "2")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, config.Index.NTables)
	assert.Equal(t, 16, config.Index.HashLength)
	assert.Equal(t, uint64(7), config.Index.Seed)
	assert.Equal(t, 25, config.Query.Neighbours)
	assert.Equal(t, 2, config.Query.Workers)
	assert.Equal(t, StorePureKV, config.Store.Kind)
	assert.Equal(t, "0.0.0.0:6666", config.Store.Address)
	assert.Equal(t, 500, config.Store.Timeout)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("BadEnv", func(t *testing.T) {
		t.Setenv("N_TABLES", "many")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
	t.Run("BadSeed", func(t *testing.T) {
		t.Setenv("SEED", "-1")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
	t.Run("NonPositive", func(t *testing.T) {
		t.Setenv("MAX_NN", "0")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
	t.Run("PureKvWithoutAddress", func(t *testing.T) {
		t.Setenv("STORE_KIND", StorePureKV)
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
