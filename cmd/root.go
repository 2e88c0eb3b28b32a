package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cm "github.com/gasparian/rp-lsh-go/common"
	"github.com/spf13/cobra"
)

var (
	configPath string
	config     *cm.Config
	logger     = cm.GetNewLogger()
)

var rootCmd = &cobra.Command{
	Use:   "rp-lsh",
	Short: "Random projection LSH for approximate nearest neighbours search",
	Long: `rp-lsh builds random hyperplane hash families, hashes ann-benchmarks
datasets and answers approximate nearest neighbours queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = cm.LoadConfig(configPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the yaml config")
}

// Execute runs the root command; interrupt cancels the running benchmark
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
