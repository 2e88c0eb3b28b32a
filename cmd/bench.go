package cmd

import (
	"fmt"

	"github.com/gasparian/rp-lsh-go/annbench"
	"github.com/spf13/cobra"
)

var (
	benchDataPath  string
	benchIndexPath string
	benchLimit     int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure precision and recall on the ann-benchmarks dataset",
	Long: `Hashes the train split, queries every test vector and compares the
found neighbours with the ground truth stored in the file.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVarP(&benchDataPath, "data", "d", "", "ann-benchmarks hdf5 file")
	benchCmd.Flags().StringVarP(&benchIndexPath, "index", "i", "", "hash family dumped by build (new one is created if empty)")
	benchCmd.Flags().IntVar(&benchLimit, "limit", 0, "use only first n test vectors")
	benchCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(benchCmd)
}

// checkBenchFlags validates settings used to score the search
func checkBenchFlags(neighbours, limit int) error {
	if neighbours <= 0 {
		return fmt.Errorf("number of neighbours must be positive, got %d", neighbours)
	}
	if limit < 0 {
		return fmt.Errorf("--limit can't be negative")
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := checkBenchFlags(config.Query.Neighbours, benchLimit); err != nil {
		return err
	}
	logger.Info.Printf("Opening dataset %s...", benchDataPath)
	ds, err := annbench.LoadDataset(benchDataPath)
	if err != nil {
		return err
	}
	if len(ds.Train) == 0 || len(ds.Test) == 0 {
		return fmt.Errorf("train and test splits can't be empty")
	}
	logger.Info.Printf("Train: %v, test: %v, dims: %v", len(ds.Train), len(ds.Test), len(ds.Train[0]))

	test, truth := ds.Test, annbench.TopK(ds.Neighbors, config.Query.Neighbours)
	if benchLimit > 0 && benchLimit < len(test) {
		test, truth = test[:benchLimit], truth[:benchLimit]
	}

	var runner annbench.Runner
	if benchIndexPath != "" {
		runner.Hasher, err = loadHasher(benchIndexPath)
	} else {
		runner.Hasher, err = newHasher(config.Index, len(ds.Train[0]))
	}
	if err != nil {
		return err
	}
	s, closeStore, err := openStore(config.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := s.Clear(); err != nil {
		return err
	}
	runner.Store = s
	runner.Logger = logger
	runner.Neighbours = config.Query.Neighbours
	runner.Workers = config.Query.Workers

	ids, err := runner.Populate(ds.Train)
	if err != nil {
		return err
	}
	report, err := runner.Run(cmd.Context(), test, truth, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "queries: %d\nprecision: %.4f\nrecall: %.4f\nfound: %.2f\navg query time: %v\n",
		report.Queries, report.Precision, report.Recall, report.Found, report.AvgQueryTime)
	return nil
}
