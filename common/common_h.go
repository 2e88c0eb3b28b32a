package common

import (
	"log"
)

// Logger holds several logger instances with different prefixes
type Logger struct {
	Warn *log.Logger
	Info *log.Logger
	Err  *log.Logger
}

// IndexConfig holds the hash family shape;
// zero Dims means the dimensionality is taken from the dataset,
// zero Seed means the time-seeded source
type IndexConfig struct {
	Dims       int    `yaml:"dims"`
	NTables    int    `yaml:"n_tables"`
	HashLength int    `yaml:"hash_length"`
	Seed       uint64 `yaml:"seed"`
}

// QueryConfig holds search parameters
type QueryConfig struct {
	Neighbours int `yaml:"neighbours"`
	Workers    int `yaml:"workers"`
}

// StoreConfig selects where the hashed dataset lives: "kv" or "purekv"
type StoreConfig struct {
	Kind    string `yaml:"kind"`
	Address string `yaml:"address"`
	Timeout int    `yaml:"timeout"`
}

// Config holds all needed variables to run the tools
type Config struct {
	Index IndexConfig `yaml:"index"`
	Query QueryConfig `yaml:"query"`
	Store StoreConfig `yaml:"store"`
}
