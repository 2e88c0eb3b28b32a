package lsh

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func (c Config) validate() error {
	if c.Dims <= 0 {
		return fmt.Errorf("%w: dimensions number must be a positive integer, got %d", ErrInvalidArgument, c.Dims)
	}
	if c.NTables <= 0 {
		return fmt.Errorf("%w: number of hash tables must be a positive integer, got %d", ErrInvalidArgument, c.NTables)
	}
	if c.HashLength <= 0 {
		return fmt.Errorf("%w: hash length must be a positive integer, got %d", ErrInvalidArgument, c.HashLength)
	}
	return nil
}

// New creates hash family with nTables tables of hashLength hyperplanes each,
// drawn from the standard normal distribution using a time-seeded source
func New(dims, nTables, hashLength int) (*RandomProjectionLSH, error) {
	src := rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	return NewWithSource(Config{Dims: dims, NTables: nTables, HashLength: hashLength}, src)
}

// NewWithSource creates hash family drawing hyperplanes from the given source.
// The same seeded source always gives the same family.
func NewWithSource(config Config, src rand.Source) (*RandomProjectionLSH, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	rows := config.NTables * config.HashLength
	data := make([]float64, rows*config.Dims)
	for i := range data {
		data[i] = normal.Rand()
	}
	return &RandomProjectionLSH{
		config: config,
		planes: mat.NewDense(rows, config.Dims, data),
	}, nil
}

// NewFromPlanes creates hash family from the explicit hyperplanes
// of shape (tables, hash length, dimensions)
func NewFromPlanes(planes [][][]float64) (*RandomProjectionLSH, error) {
	if len(planes) == 0 || len(planes[0]) == 0 || len(planes[0][0]) == 0 {
		return nil, fmt.Errorf("%w: hash family can't be empty", ErrInvalidArgument)
	}
	config := Config{
		NTables:    len(planes),
		HashLength: len(planes[0]),
		Dims:       len(planes[0][0]),
	}
	data := make([]float64, 0, config.NTables*config.HashLength*config.Dims)
	for t, table := range planes {
		if len(table) != config.HashLength {
			return nil, fmt.Errorf("%w: table %d holds %d hyperplanes, expected %d", ErrInvalidArgument, t, len(table), config.HashLength)
		}
		for h, plane := range table {
			if len(plane) != config.Dims {
				return nil, fmt.Errorf("%w: hyperplane %d of table %d has %d dimensions, expected %d", ErrInvalidArgument, h, t, len(plane), config.Dims)
			}
			data = append(data, plane...)
		}
	}
	return &RandomProjectionLSH{
		config: config,
		planes: mat.NewDense(config.NTables*config.HashLength, config.Dims, data),
	}, nil
}

// Config returns the shape of the hash family
func (lsh *RandomProjectionLSH) Config() Config {
	return lsh.config
}

// Planes returns copy of the hash family as (tables, hash length, dimensions)
func (lsh *RandomProjectionLSH) Planes() [][][]float64 {
	planes := make([][][]float64, lsh.config.NTables)
	for t := range planes {
		planes[t] = make([][]float64, lsh.config.HashLength)
		for h := range planes[t] {
			planes[t][h] = mat.Row(nil, t*lsh.config.HashLength+h, lsh.planes)
		}
	}
	return planes
}

func (lsh *RandomProjectionLSH) checkDims(vecs [][]float64, name string) error {
	for i, vec := range vecs {
		if len(vec) != lsh.config.Dims {
			return fmt.Errorf("%w: %s vector %d has %d dimensions, expected %d", ErrInvalidArgument, name, i, len(vec), lsh.config.Dims)
		}
	}
	return nil
}

// Hashing calculates binary codes for the batch of query vectors.
// Bit is set when the dot product with the hyperplane is >= 0,
// so vectors lying on the hyperplane hash to 1.
func (lsh *RandomProjectionLSH) Hashing(query [][]float64) ([]Code, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: query batch is empty", ErrInvalidArgument)
	}
	if err := lsh.checkDims(query, "query"); err != nil {
		return nil, err
	}
	data := make([]float64, 0, len(query)*lsh.config.Dims)
	for _, vec := range query {
		data = append(data, vec...)
	}
	q := mat.NewDense(len(query), lsh.config.Dims, data)
	var prod mat.Dense
	prod.Mul(q, lsh.planes.T())

	codes := make([]Code, len(query))
	for i := range codes {
		code := newCode(lsh.config)
		for t := 0; t < lsh.config.NTables; t++ {
			for h := 0; h < lsh.config.HashLength; h++ {
				if prod.At(i, t*lsh.config.HashLength+h) >= 0 {
					code[t][h] = 1
				}
			}
		}
		codes[i] = code
	}
	return codes, nil
}

// Hash calculates binary code of a single vector
func (lsh *RandomProjectionLSH) Hash(vec []float64) (Code, error) {
	codes, err := lsh.Hashing([][]float64{vec})
	if err != nil {
		return nil, err
	}
	return codes[0], nil
}

// Dump encodes hash family as a byte-array
func (lsh *RandomProjectionLSH) Dump() ([]byte, error) {
	if lsh.planes == nil {
		return nil, hasherEmptyErr
	}
	rows, cols := lsh.planes.Dims()
	encodable := hasherEncode{
		Config: lsh.config,
		Planes: make([]float64, 0, rows*cols),
	}
	for i := 0; i < rows; i++ {
		encodable.Planes = append(encodable.Planes, lsh.planes.RawRowView(i)...)
	}
	buf := &bytes.Buffer{}
	enc := gob.NewEncoder(buf)
	err := enc.Encode(encodable)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load decodes hash family from the byte-array made by Dump
func Load(inp []byte) (*RandomProjectionLSH, error) {
	var decoded hasherEncode
	dec := gob.NewDecoder(bytes.NewReader(inp))
	err := dec.Decode(&decoded)
	if err != nil {
		return nil, err
	}
	if err := decoded.Config.validate(); err != nil {
		return nil, err
	}
	rows := decoded.Config.NTables * decoded.Config.HashLength
	if len(decoded.Planes) != rows*decoded.Config.Dims {
		return nil, fmt.Errorf("%w: decoded hash family holds %d values, expected %d", ErrInvalidArgument, len(decoded.Planes), rows*decoded.Config.Dims)
	}
	return &RandomProjectionLSH{
		config: decoded.Config,
		planes: mat.NewDense(rows, decoded.Config.Dims, decoded.Planes),
	}, nil
}
