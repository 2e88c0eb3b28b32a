package lsh

import (
	"bytes"
	"io"
	"os"

	"gonum.org/v1/gonum/blas/blas64"
)

func newCode(config Config) Code {
	code := make(Code, config.NTables)
	for t := range code {
		code[t] = make([]uint8, config.HashLength)
	}
	return code
}

// NewVec creates new blas vector
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// L2 calculates l2-distance between two vectors
func L2(a, b blas64.Vector) float64 {
	res := NewVec(make([]float64, b.N))
	blas64.Copy(b, res)
	blas64.Axpy(-1.0, a, res)
	return blas64.Nrm2(res)
}

// DumpBytesToFile writes byte array to the file
func DumpBytesToFile(inp []byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(inp); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// LoadBytesFromFile loads byte array from file
func LoadBytesFromFile(path string) ([]byte, error) {
	buf := &bytes.Buffer{}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, err = io.Copy(buf, f)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
