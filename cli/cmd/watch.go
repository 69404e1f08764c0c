package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/LepistaBioinformatics/classeq2/watcher"
	"github.com/spf13/cobra"
)

var (
	watchDatabase string
	watchPattern  string
	watchOutput   string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and place FASTA files dropped into it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db := loadDatabase(watchDatabase)
		cfg := placer.DefaultConfig()
		cfg.Workers = threads()

		outputDir := watchOutput
		if outputDir == "" {
			outputDir = args[0]
		}
		store := storage.NewDirectoryStore(outputDir)
		w := watcher.New(db, args[0], store, watcher.Options{
			Pattern:   watchPattern,
			Placement: cfg,
		})
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			checkErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.PersistentFlags().StringVarP(&watchDatabase, "database", "d", "classeq-database.cls", "Database file path")
	watchCmd.PersistentFlags().StringVarP(&watchPattern, "pattern", "", "", "Glob pattern for input files")
	watchCmd.PersistentFlags().StringVarP(&watchOutput, "output", "o", "", "Directory for result artifacts (default the watched dir)")
}
