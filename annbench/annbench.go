package annbench

import (
	"sort"

	"github.com/gasparian/rp-lsh-go/lsh"
)

// PrecisionRecall returns ratio of relevant predictions over all predictions
// and over all true relevant items; groundTruth MUST BE SORTED
func PrecisionRecall(prediction, groundTruth []int) (float64, float64) {
	if len(groundTruth) == 0 {
		return 0.0, 0.0
	}
	valid := 0
	for _, val := range prediction {
		idx := sort.SearchInts(groundTruth, val)
		if idx < len(groundTruth) && groundTruth[idx] == val {
			valid++
		}
	}
	precision := 0.0
	if len(prediction) > 0 {
		precision = float64(valid) / float64(len(prediction))
	}
	recall := float64(valid) / float64(len(groundTruth))
	return precision, recall
}

// BruteForce returns indices of the k closest data points to the query,
// ordered by distance; equal distances keep the data order
func BruteForce(query []float64, data [][]float64, k int) []int {
	dists := make([]float64, len(data))
	order := make([]int, len(data))
	for i := range data {
		dists[i] = lsh.L2(lsh.NewVec(query), lsh.NewVec(data[i]))
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dists[order[i]] < dists[order[j]]
	})
	if len(order) > k {
		order = order[:k]
	}
	return order
}

// ConvertTo64 __
func ConvertTo64(ar []float32) []float64 {
	newar := make([]float64, len(ar))
	var v float32
	var i int
	for i, v = range ar {
		newar[i] = float64(v)
	}
	return newar
}

// ConvertToInt __
func ConvertToInt(ar []int32) []int {
	newar := make([]int, len(ar))
	var v int32
	var i int
	for i, v = range ar {
		newar[i] = int(v)
	}
	return newar
}

// SplitTo64 cuts flat row-major matrix into rows of dims length
func SplitTo64(flat []float32, dims int) [][]float64 {
	rows := make([][]float64, len(flat)/dims)
	for i := range rows {
		rows[i] = ConvertTo64(flat[i*dims : (i+1)*dims])
	}
	return rows
}

// SplitToInt cuts flat row-major matrix into rows of dims length
func SplitToInt(flat []int32, dims int) [][]int {
	rows := make([][]int, len(flat)/dims)
	for i := range rows {
		rows[i] = ConvertToInt(flat[i*dims : (i+1)*dims])
	}
	return rows
}

// TopK keeps first k entries of every neighbours row, given in the order
// of distance, and sorts them so they can be used as the ground truth
func TopK(neighbors [][]int, k int) [][]int {
	truth := make([][]int, len(neighbors))
	for i, row := range neighbors {
		n := min(k, len(row))
		truth[i] = make([]int, n)
		copy(truth[i], row[:n])
		sort.Ints(truth[i])
	}
	return truth
}
