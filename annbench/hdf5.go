package annbench

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// Objects inside the ann-benchmarks hdf5:
// train
// test
// distances
// neighbors

// Dataset holds ann-benchmarks splits; Neighbors rows keep the file order,
// nearest first
type Dataset struct {
	Train     [][]float64
	Test      [][]float64
	Neighbors [][]int
}

// GetVectorsFromHDF5 reads the whole dataset into the flat slice
// and returns the row length
func GetVectorsFromHDF5(table *hdf5.File, datasetName string, vecs interface{}) (int, error) {
	dataset, err := table.OpenDataset(datasetName)
	if err != nil {
		return 0, err
	}
	defer dataset.Close()

	fileSpace := dataset.Space()
	defer fileSpace.Close()
	dims, _, err := fileSpace.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) != 2 {
		return 0, fmt.Errorf("%s: expected 2-d dataset, got %d-d", datasetName, len(dims))
	}
	numTicks := fileSpace.SimpleExtentNPoints()

	switch vecs := vecs.(type) {
	case *[]float32:
		*vecs = make([]float32, numTicks)
	case *[]int32:
		*vecs = make([]int32, numTicks)
	default:
		return 0, fmt.Errorf("%s: unsupported destination type %T", datasetName, vecs)
	}

	err = dataset.Read(vecs)
	if err != nil {
		return 0, err
	}
	return int(dims[1]), nil
}

// LoadDataset reads train, test and neighbors splits from the file
func LoadDataset(path string) (*Dataset, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds := &Dataset{}
	for _, split := range []struct {
		name string
		dst  *[][]float64
	}{
		{"train", &ds.Train},
		{"test", &ds.Test},
	} {
		flat := []float32{}
		dims, err := GetVectorsFromHDF5(f, split.name, &flat)
		if err != nil {
			return nil, err
		}
		*split.dst = SplitTo64(flat, dims)
	}

	neighbors := []int32{}
	dims, err := GetVectorsFromHDF5(f, "neighbors", &neighbors)
	if err != nil {
		return nil, err
	}
	ds.Neighbors = SplitToInt(neighbors, dims)
	return ds, nil
}
