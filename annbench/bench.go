package annbench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/gasparian/rp-lsh-go/store"
	"golang.org/x/sync/errgroup"
)

var (
	groundTruthLenErr = errors.New("number of ground truth rows must match number of queries")
)

// Runner holds the index and the store with hashed dataset
// and measures quality of the search on the test queries
type Runner struct {
	Hasher     *lsh.RandomProjectionLSH
	Store      store.Store
	Logger     *cm.Logger
	Neighbours int
	Workers    int
	Silent     bool
}

// Report holds averaged search quality
type Report struct {
	Queries      int
	Precision    float64
	Recall       float64
	Found        float64
	AvgQueryTime time.Duration
}

func (r *Runner) newBar(total int) *pb.ProgressBar {
	bar := pb.New(total)
	if r.Silent {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

// Populate hashes the train vectors and puts them into the store;
// returns ids in the order of train rows
func (r *Runner) Populate(train [][]float64) ([]string, error) {
	r.Logger.Info.Printf("Populating index with %v vectors...", len(train))
	ids := make([]string, len(train))
	bar := r.newBar(len(train))
	defer bar.Finish()
	for i, vec := range train {
		id, err := store.Put(r.Store, r.Hasher, "", vec)
		if err != nil {
			return nil, fmt.Errorf("train vector %d: %w", i, err)
		}
		ids[i] = id
		bar.Increment()
	}
	return ids, nil
}

// Run queries every test vector against the stored dataset and compares
// found points with the ground truth, given as sorted train row indices.
// trainIds maps train row index to the store id.
func (r *Runner) Run(ctx context.Context, test [][]float64, groundTruth [][]int, trainIds []string) (Report, error) {
	if len(test) != len(groundTruth) {
		return Report{}, groundTruthLenErr
	}
	ids, data, hashes, err := store.Collect(r.Store)
	if err != nil {
		return Report{}, err
	}
	rowById := make(map[string]int, len(trainIds))
	for row, id := range trainIds {
		rowById[id] = row
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	precisions := make([]float64, len(test))
	recalls := make([]float64, len(test))
	found := make([]int, len(test))
	elapsed := make([]time.Duration, len(test))

	r.Logger.Info.Printf("Predicting %v queries with %v workers...", len(test), workers)
	bar := r.newBar(len(test))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range test {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := r.Hasher.QueryNeighbours(test[i:i+1], data, hashes, r.Neighbours)
			if err != nil {
				return err
			}
			elapsed[i] = time.Since(start)
			prediction := make([]int, 0, len(res[0].Indices))
			for _, idx := range res[0].Indices {
				row, ok := rowById[ids[idx]]
				if !ok {
					return fmt.Errorf("unknown id in the store: %s", ids[idx])
				}
				prediction = append(prediction, row)
			}
			sort.Ints(prediction)
			precisions[i], recalls[i] = PrecisionRecall(prediction, groundTruth[i])
			found[i] = len(prediction)
			bar.Increment()
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()
	if err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{Queries: len(test)}
	var total time.Duration
	for i := range test {
		report.Precision += precisions[i]
		report.Recall += recalls[i]
		report.Found += float64(found[i])
		total += elapsed[i]
	}
	if len(test) > 0 {
		n := float64(len(test))
		report.Precision /= n
		report.Recall /= n
		report.Found /= n
		report.AvgQueryTime = total / time.Duration(len(test))
	}
	r.Logger.Info.Printf("Done! Precision: %v Recall: %v Found: %v Avg. query time: %v",
		report.Precision, report.Recall, report.Found, report.AvgQueryTime)
	return report, nil
}

// GroundTruth computes exact k nearest train rows for every test vector
func GroundTruth(test, train [][]float64, k int) [][]int {
	truth := make([][]int, len(test))
	for i, q := range test {
		truth[i] = BruteForce(q, train, k)
		sort.Ints(truth[i])
	}
	return truth
}
