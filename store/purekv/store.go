package purekv

import (
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
	pkv "github.com/gasparian/pure-kv-go/client"
)

const (
	vecsBucket   = "vecs"
	hashesBucket = "hashes"
)

var (
	// ErrKeyNotFound returned when there is no record with such id
	ErrKeyNotFound = errors.New("Key not found")
	wrongTypeErr   = errors.New("Stored value has unexpected type")
)

func init() {
	gob.Register([]float64{})
	gob.Register(lsh.Code{})
}

type KeysIterator struct {
	client     *pkv.Client
	bucketName string
}

func (it *KeysIterator) Next() (string, bool) {
	if it.client == nil {
		return "", false
	}
	vecId, _, err := it.client.Next(it.bucketName)
	if vecId == "" || err != nil {
		it.Close()
		return "", false
	}
	return vecId, true
}

// Close releases the iterator connection; safe to call more than once
func (it *KeysIterator) Close() error {
	if it.client == nil {
		return nil
	}
	err := it.client.Close()
	it.client = nil
	return err
}

// Config holds address of the pure-kv server and client timeout
type Config struct {
	Address string
	Timeout int
}

// PureKvStore keeps vectors and hashes in the remote pure-kv server
type PureKvStore struct {
	config Config
	client *pkv.Client
}

func New(config Config) *PureKvStore {
	return &PureKvStore{
		config: config,
		client: pkv.New(config.Address, config.Timeout),
	}
}

// Start opens the connection and creates the buckets
func (p *PureKvStore) Start() error {
	err := p.client.Open()
	if err != nil {
		return err
	}
	for _, bucket := range []string{vecsBucket, hashesBucket} {
		if err := p.client.Create(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (p *PureKvStore) Close() {
	p.client.Close()
}

// Clear drops both buckets and creates them again empty
func (p *PureKvStore) Clear() error {
	for _, bucket := range []string{vecsBucket, hashesBucket} {
		if err := p.client.Destroy(bucket); err != nil {
			return fmt.Errorf("destroy %s: %w", bucket, err)
		}
		if err := p.client.Create(bucket); err != nil {
			return err
		}
	}
	return nil
}

func (p *PureKvStore) SetVector(id string, vec []float64) error {
	return p.client.Set(vecsBucket, id, vec)
}

func (p *PureKvStore) GetVector(id string) ([]float64, error) {
	tmpVal, ok := p.client.Get(vecsBucket, id)
	if !ok {
		return nil, ErrKeyNotFound
	}
	vec, ok := tmpVal.([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: %T", wrongTypeErr, tmpVal)
	}
	return vec, nil
}

func (p *PureKvStore) SetHash(id string, code lsh.Code) error {
	return p.client.Set(hashesBucket, id, code)
}

func (p *PureKvStore) GetHash(id string) (lsh.Code, error) {
	tmpVal, ok := p.client.Get(hashesBucket, id)
	if !ok {
		return nil, ErrKeyNotFound
	}
	code, ok := tmpVal.(lsh.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %T", wrongTypeErr, tmpVal)
	}
	return code, nil
}

// Iterator walks over ids of the stored vectors using a separate connection
func (p *PureKvStore) Iterator() (store.Iterator, error) {
	err := p.client.MakeIterator(vecsBucket)
	if err != nil {
		return nil, err
	}
	client := pkv.New(p.config.Address, p.config.Timeout)
	if err := client.Open(); err != nil {
		return nil, err
	}
	return &KeysIterator{
		client:     client,
		bucketName: vecsBucket,
	}, nil
}
