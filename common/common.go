package common

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	StoreKV     = "kv"
	StorePureKV = "purekv"
)

// GetNewLogger creates an instance of all needed loggers
func GetNewLogger() *Logger {
	return &Logger{
		Warn: log.New(os.Stderr, "[ Warn ] ", log.LstdFlags|log.Lshortfile),
		Info: log.New(os.Stderr, "[ Info ] ", log.LstdFlags|log.Lshortfile),
		Err:  log.New(os.Stderr, "[ Error ] ", log.LstdFlags|log.Lshortfile),
	}
}

// DefaultConfig returns config used when nothing else is specified
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			NTables:    10,
			HashLength: 8,
		},
		Query: QueryConfig{
			Neighbours: 10,
			Workers:    4,
		},
		Store: StoreConfig{
			Kind:    StoreKV,
			Timeout: 500,
		},
	}
}

// LoadConfig reads yaml file over the defaults (if path is not empty)
// and then applies the environment variables
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := config.ParseEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseEnv overrides config values by the set environment variables
func (c *Config) ParseEnv() error {
	intVars := map[string]*int{
		"DIMS":           &c.Index.Dims,
		"N_TABLES":       &c.Index.NTables,
		"HASH_LENGTH":    &c.Index.HashLength,
		"MAX_NN":         &c.Query.Neighbours,
		"WORKERS":        &c.Query.Workers,
		"PUREKV_TIMEOUT": &c.Store.Timeout,
	}
	for key, dst := range intVars {
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		val, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("Env value must be an integer: %s: %w", key, err)
		}
		*dst = val
	}
	if raw, ok := os.LookupEnv("SEED"); ok {
		val, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("Env value must be an unsigned integer: SEED: %w", err)
		}
		c.Index.Seed = val
	}
	stringVars := map[string]*string{
		"STORE_KIND":  &c.Store.Kind,
		"PUREKV_ADDR": &c.Store.Address,
	}
	for key, dst := range stringVars {
		val := os.Getenv(key)
		if len(val) == 0 {
			continue
		}
		*dst = val
	}
	return nil
}

// Validate checks that config values make sense
func (c *Config) Validate() error {
	if c.Index.Dims < 0 {
		return fmt.Errorf("dims can't be negative: %d", c.Index.Dims)
	}
	if c.Index.NTables <= 0 || c.Index.HashLength <= 0 {
		return fmt.Errorf("number of tables and hash length must be positive: %d, %d", c.Index.NTables, c.Index.HashLength)
	}
	if c.Query.Neighbours <= 0 {
		return fmt.Errorf("neighbours number must be positive: %d", c.Query.Neighbours)
	}
	switch c.Store.Kind {
	case StoreKV:
	case StorePureKV:
		if c.Store.Address == "" {
			return fmt.Errorf("pure-kv store needs an address")
		}
	default:
		return fmt.Errorf("unknown store kind: %s", c.Store.Kind)
	}
	return nil
}
