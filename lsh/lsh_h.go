package lsh

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// DefaultNeighbours is the number of neighbours returned when the caller has no preference
const DefaultNeighbours = 10

var (
	// ErrInvalidArgument is returned for every shape or parameter violation
	ErrInvalidArgument = errors.New("invalid argument")
	hasherEmptyErr     = errors.New("hasher must contain at least one hash table")
)

// Config holds the shape of the hash family
type Config struct {
	Dims       int
	NTables    int
	HashLength int
}

// Code holds binary hash code of a single vector: one row per hash table
type Code [][]uint8

// Result holds neighbours found for a single query vector,
// sorted by ascending distance
type Result struct {
	Distances []float64
	Indices   []int
}

// RandomProjectionLSH holds the bank of random hyperplanes.
// Hyperplane h of table t is stored in row t*HashLength+h of planes.
// Nothing is mutated after construction, so the index can be shared
// between goroutines without locking.
type RandomProjectionLSH struct {
	config Config
	planes *mat.Dense
}

// hasherEncode used for encoding/decoding the RandomProjectionLSH
type hasherEncode struct {
	Config Config
	Planes []float64
}
