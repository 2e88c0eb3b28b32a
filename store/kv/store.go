package kv

import (
	"errors"
	"sync"

	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
)

var (
	// ErrKeyNotFound returned when there is no record with such id
	ErrKeyNotFound = errors.New("Key not found")
)

// KVStore keeps vectors and hashes in memory;
// ids are iterated in the order of their first insertion
type KVStore struct {
	mx     sync.RWMutex
	ids    []string
	vecs   map[string][]float64
	hashes map[string]lsh.Code
}

func NewKVStore() *KVStore {
	return &KVStore{
		vecs:   make(map[string][]float64),
		hashes: make(map[string]lsh.Code),
	}
}

// KeysIterator walks over a snapshot of ids
type KeysIterator struct {
	vecIds chan string
}

func (it *KeysIterator) Next() (string, bool) {
	vecId, opened := <-it.vecIds
	if !opened {
		return "", false
	}
	return vecId, true
}

func (s *KVStore) SetVector(id string, vec []float64) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, ok := s.vecs[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.vecs[id] = vec
	return nil
}

func (s *KVStore) GetVector(id string) ([]float64, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	vec, ok := s.vecs[id]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return vec, nil
}

func (s *KVStore) SetHash(id string, code lsh.Code) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.hashes[id] = code
	return nil
}

func (s *KVStore) GetHash(id string) (lsh.Code, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	code, ok := s.hashes[id]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return code, nil
}

func (s *KVStore) Iterator() (store.Iterator, error) {
	s.mx.RLock()
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	s.mx.RUnlock()

	idsCh := make(chan string, len(ids))
	for _, id := range ids {
		idsCh <- id
	}
	close(idsCh)
	return &KeysIterator{vecIds: idsCh}, nil
}

func (s *KVStore) Clear() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.ids = nil
	s.vecs = make(map[string][]float64)
	s.hashes = make(map[string]lsh.Code)
	return nil
}
