package cmd

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
	"github.com/gasparian/rp-lsh-go/store/kv"
	"github.com/gasparian/rp-lsh-go/store/purekv"
)

// newHasher creates hash family for vectors of dims length;
// a non-zero seed makes the family reproducible
func newHasher(config cm.IndexConfig, dims int) (*lsh.RandomProjectionLSH, error) {
	if config.Dims != 0 && config.Dims != dims {
		return nil, fmt.Errorf("config dims %d differ from the data dims %d", config.Dims, dims)
	}
	if config.Seed == 0 {
		return lsh.New(dims, config.NTables, config.HashLength)
	}
	src := rand.NewPCG(config.Seed, config.Seed)
	return lsh.NewWithSource(lsh.Config{
		Dims:       dims,
		NTables:    config.NTables,
		HashLength: config.HashLength,
	}, src)
}

// loadHasher reads hash family dumped by the build command
func loadHasher(path string) (*lsh.RandomProjectionLSH, error) {
	raw, err := lsh.LoadBytesFromFile(path)
	if err != nil {
		return nil, err
	}
	return lsh.Load(raw)
}

// openStore returns the configured store and the func to release it
func openStore(config cm.StoreConfig) (store.Store, func(), error) {
	switch config.Kind {
	case cm.StorePureKV:
		s := purekv.New(purekv.Config{
			Address: config.Address,
			Timeout: config.Timeout,
		})
		if err := s.Start(); err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return kv.NewKVStore(), func() {}, nil
	}
}

// parseVec parses comma separated floats
func parseVec(raw string) ([]float64, error) {
	fields := strings.Split(raw, ",")
	vec := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad vector component %q: %w", f, err)
		}
		vec = append(vec, val)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("vector is empty")
	}
	return vec, nil
}
