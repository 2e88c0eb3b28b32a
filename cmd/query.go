package cmd

import (
	"fmt"

	"github.com/gasparian/rp-lsh-go/annbench"
	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/gasparian/rp-lsh-go/store"
	"github.com/spf13/cobra"
)

var (
	queryIndexPath string
	queryDataPath  string
	queryVec       string
	queryTestRow   int
	queryK         int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find approximate nearest neighbours of a single vector",
	Long: `Loads hash family dumped by build and searches the dataset for the
neighbours of --vec (comma separated) or of the --test-row of the hdf5 test
split. With the kv store the train split of --data is hashed on the fly.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryIndexPath, "index", "i", "index.gob", "hash family dumped by build")
	queryCmd.Flags().StringVarP(&queryDataPath, "data", "d", "", "ann-benchmarks hdf5 file")
	queryCmd.Flags().StringVar(&queryVec, "vec", "", "query vector, comma separated")
	queryCmd.Flags().IntVar(&queryTestRow, "test-row", -1, "row of the test split to use as a query")
	queryCmd.Flags().IntVarP(&queryK, "neighbours", "k", 0, "number of neighbours (config value if 0)")
	rootCmd.AddCommand(queryCmd)
}

// checkQueryFlags rejects flag combinations that can't produce a query
// before anything is loaded
func checkQueryFlags(storeKind, dataPath, vec string, testRow int) error {
	if vec == "" && testRow < 0 {
		return fmt.Errorf("either --vec or --test-row must be set")
	}
	if vec == "" && dataPath == "" {
		return fmt.Errorf("--test-row needs --data")
	}
	if storeKind == cm.StoreKV && dataPath == "" {
		return fmt.Errorf("kv store needs --data to hash the train split")
	}
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	err := checkQueryFlags(config.Store.Kind, queryDataPath, queryVec, queryTestRow)
	if err != nil {
		return err
	}
	hasher, err := loadHasher(queryIndexPath)
	if err != nil {
		return err
	}
	k := config.Query.Neighbours
	if queryK > 0 {
		k = queryK
	}

	var ds *annbench.Dataset
	if queryDataPath != "" {
		ds, err = annbench.LoadDataset(queryDataPath)
		if err != nil {
			return err
		}
	}

	var vec []float64
	switch {
	case queryVec != "":
		vec, err = parseVec(queryVec)
		if err != nil {
			return err
		}
	default:
		if queryTestRow >= len(ds.Test) {
			return fmt.Errorf("test row %d is not available", queryTestRow)
		}
		vec = ds.Test[queryTestRow]
	}

	s, closeStore, err := openStore(config.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	rowById := make(map[string]int)
	if config.Store.Kind == cm.StoreKV {
		runner := &annbench.Runner{Hasher: hasher, Store: s, Logger: logger}
		ids, err := runner.Populate(ds.Train)
		if err != nil {
			return err
		}
		for row, id := range ids {
			rowById[id] = row
		}
	}

	ids, data, hashes, err := store.Collect(s)
	if err != nil {
		return err
	}
	results, err := hasher.QueryNeighbours([][]float64{vec}, data, hashes, k)
	if err != nil {
		return err
	}
	res := results[0]
	if len(res.Indices) < k {
		logger.Warn.Printf("Only %v candidates found, %v requested", len(res.Indices), k)
	}
	out := cmd.OutOrStdout()
	for rank, idx := range res.Indices {
		if row, ok := rowById[ids[idx]]; ok {
			fmt.Fprintf(out, "%d\t%d\t%v\n", rank, row, res.Distances[rank])
			continue
		}
		fmt.Fprintf(out, "%d\t%s\t%v\n", rank, ids[idx], res.Distances[rank])
	}
	return nil
}
