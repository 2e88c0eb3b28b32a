package lsh

import (
	"fmt"
	"sort"
)

type matchFunc func(query, data []uint8) bool

// codesMatch reports whether two codes of one hash table are identical.
// Sum of elementwise product equals both sums only for equal binary codes.
// A data code without set bits gives 0/0 and never matches.
func codesMatch(query, data []uint8) bool {
	prod, dataSum, querySum := codeSums(query, data)
	if dataSum == 0 {
		return false
	}
	return prod == dataSum && dataSum == querySum
}

// ratioMatch is the legacy test: sum(query*data) / sum(data) == 1.
// Any data code whose set bits are all set in the query passes it.
func ratioMatch(query, data []uint8) bool {
	prod, dataSum, _ := codeSums(query, data)
	if dataSum == 0 {
		return false
	}
	return prod == dataSum
}

func codeSums(query, data []uint8) (int, int, int) {
	var prod, dataSum, querySum int
	for i := range data {
		prod += int(query[i]) * int(data[i])
		dataSum += int(data[i])
		querySum += int(query[i])
	}
	return prod, dataSum, querySum
}

// isCandidate returns true if the data code matches query code in any table
func isCandidate(query, data Code, match matchFunc) bool {
	for t := range query {
		if match(query[t], data[t]) {
			return true
		}
	}
	return false
}

func (lsh *RandomProjectionLSH) checkCodes(codes []Code) error {
	for i, code := range codes {
		if len(code) != lsh.config.NTables {
			return fmt.Errorf("%w: hash code %d holds %d tables, expected %d", ErrInvalidArgument, i, len(code), lsh.config.NTables)
		}
		for t, row := range code {
			if len(row) != lsh.config.HashLength {
				return fmt.Errorf("%w: hash code %d has length %d in table %d, expected %d", ErrInvalidArgument, i, len(row), t, lsh.config.HashLength)
			}
		}
	}
	return nil
}

func (lsh *RandomProjectionLSH) validateQuery(query, data [][]float64, dataHash []Code, neighbours int) error {
	if neighbours <= 0 {
		return fmt.Errorf("%w: neighbours number must be a positive integer, got %d", ErrInvalidArgument, neighbours)
	}
	if len(query) == 0 {
		return fmt.Errorf("%w: query batch is empty", ErrInvalidArgument)
	}
	if len(data) != len(dataHash) {
		return fmt.Errorf("%w: data holds %d vectors but %d hash codes given", ErrInvalidArgument, len(data), len(dataHash))
	}
	if err := lsh.checkDims(query, "query"); err != nil {
		return err
	}
	if err := lsh.checkDims(data, "data"); err != nil {
		return err
	}
	return lsh.checkCodes(dataHash)
}

// rank computes exact distances from query to the candidates and keeps
// the closest ones; candidates must be in ascending index order
func rank(query []float64, data [][]float64, candidates []int, neighbours int) Result {
	dists := make([]float64, len(candidates))
	for i, idx := range candidates {
		dists[i] = L2(NewVec(query), NewVec(data[idx]))
	}
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dists[order[i]] < dists[order[j]]
	})
	if len(order) > neighbours {
		order = order[:neighbours]
	}
	res := Result{
		Distances: make([]float64, len(order)),
		Indices:   make([]int, len(order)),
	}
	for i, o := range order {
		res.Distances[i] = dists[o]
		res.Indices[i] = candidates[o]
	}
	return res
}

// QueryNeighbours finds approximate nearest neighbours of every query vector.
// Points of data whose code matches the query code in at least one table
// become candidates, candidates are ranked by exact euclidean distance.
// Each query gets its own candidate set; the result may hold less than
// neighbours points when there are not enough candidates.
func (lsh *RandomProjectionLSH) QueryNeighbours(query, data [][]float64, dataHash []Code, neighbours int) ([]Result, error) {
	if err := lsh.validateQuery(query, data, dataHash, neighbours); err != nil {
		return nil, err
	}
	queryHash, err := lsh.Hashing(query)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(query))
	for q, qCode := range queryHash {
		candidates := make([]int, 0)
		for idx, dCode := range dataHash {
			if isCandidate(qCode, dCode, codesMatch) {
				candidates = append(candidates, idx)
			}
		}
		results[q] = rank(query[q], data, candidates, neighbours)
	}
	return results, nil
}

// QueryNeighboursPooled keeps the legacy batched behaviour: candidates of all
// query vectors are merged into one pool and matching uses the ratio test,
// so a data code passes when its set bits are a subset of the query's.
// Every query is then ranked against the whole pool.
// Use QueryNeighbours unless the old results have to be reproduced.
func (lsh *RandomProjectionLSH) QueryNeighboursPooled(query, data [][]float64, dataHash []Code, neighbours int) ([]Result, error) {
	if err := lsh.validateQuery(query, data, dataHash, neighbours); err != nil {
		return nil, err
	}
	queryHash, err := lsh.Hashing(query)
	if err != nil {
		return nil, err
	}
	candidates := make([]int, 0)
	for idx, dCode := range dataHash {
		for _, qCode := range queryHash {
			if isCandidate(qCode, dCode, ratioMatch) {
				candidates = append(candidates, idx)
				break
			}
		}
	}
	results := make([]Result, len(query))
	for q := range query {
		results[q] = rank(query[q], data, candidates, neighbours)
	}
	return results, nil
}
