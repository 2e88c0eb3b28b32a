package cmd

import (
	"fmt"

	"github.com/gasparian/rp-lsh-go/annbench"
	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/gasparian/rp-lsh-go/lsh"
	"github.com/spf13/cobra"
)

var (
	buildDataPath  string
	buildIndexPath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Create hash family for the dataset and dump it to the file",
	Long: `Creates hash family with dimensionality of the train split of the
ann-benchmarks hdf5 file and writes it to --out. With the pure-kv store the
train vectors are hashed and saved to the store as well.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDataPath, "data", "d", "", "ann-benchmarks hdf5 file")
	buildCmd.Flags().StringVarP(&buildIndexPath, "out", "o", "index.gob", "where to dump the hash family")
	buildCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger.Info.Printf("Opening dataset %s...", buildDataPath)
	ds, err := annbench.LoadDataset(buildDataPath)
	if err != nil {
		return err
	}
	if len(ds.Train) == 0 {
		return fmt.Errorf("train split is empty")
	}
	hasher, err := newHasher(config.Index, len(ds.Train[0]))
	if err != nil {
		return err
	}
	raw, err := hasher.Dump()
	if err != nil {
		return err
	}
	if err := lsh.DumpBytesToFile(raw, buildIndexPath); err != nil {
		return err
	}
	logger.Info.Printf("Hash family %+v saved to %s", hasher.Config(), buildIndexPath)

	if config.Store.Kind != cm.StorePureKV {
		return nil
	}
	s, closeStore, err := openStore(config.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := s.Clear(); err != nil {
		return err
	}
	runner := &annbench.Runner{Hasher: hasher, Store: s, Logger: logger}
	_, err = runner.Populate(ds.Train)
	return err
}
