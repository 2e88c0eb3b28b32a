package store

import (
	"fmt"
	"io"

	"github.com/gasparian/rp-lsh-go/lsh"
	guuid "github.com/google/uuid"
)

// Iterator consists from only one method which returns uid of the next vector.
// Iterators holding a connection also implement io.Closer.
type Iterator interface {
	Next() (string, bool)
}

// Store holds dataset vectors together with their precomputed hash codes,
// so the codes are calculated once and reused by every query
type Store interface {
	SetVector(id string, vec []float64) error
	GetVector(id string) ([]float64, error)
	SetHash(id string, code lsh.Code) error
	GetHash(id string) (lsh.Code, error)
	Iterator() (Iterator, error)
	Clear() error
}

// Put hashes the vector and saves both the vector and its code.
// Random uid is generated when id is empty.
func Put(s Store, hasher *lsh.RandomProjectionLSH, id string, vec []float64) (string, error) {
	code, err := hasher.Hash(vec)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = guuid.NewString()
	}
	if err := s.SetVector(id, vec); err != nil {
		return "", err
	}
	if err := s.SetHash(id, code); err != nil {
		return "", err
	}
	return id, nil
}

// Collect walks the store and returns vectors and codes aligned by position,
// ready to be passed to the query; ids[i] identifies data[i]
func Collect(s Store) ([]string, [][]float64, []lsh.Code, error) {
	it, err := s.Iterator()
	if err != nil {
		return nil, nil, nil, err
	}
	if closer, ok := it.(io.Closer); ok {
		defer closer.Close()
	}
	var (
		ids    []string
		data   [][]float64
		hashes []lsh.Code
	)
	for {
		id, ok := it.Next()
		if !ok {
			break
		}
		vec, err := s.GetVector(id)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("vector %s: %w", id, err)
		}
		code, err := s.GetHash(id)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("hash of %s: %w", id, err)
		}
		ids = append(ids, id)
		data = append(data, vec)
		hashes = append(hashes, code)
	}
	return ids, data, hashes, nil
}
