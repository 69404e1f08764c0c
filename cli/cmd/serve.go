package cmd

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/service"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveDatabase string
	serveJobLog   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve placement jobs over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := placer.DefaultConfig()
		cfg.Workers = threads()
		store := storage.NewDirectoryStore(filepath.Dir(serveDatabase))
		svc := service.NewClasseq(store, service.Options{
			Port:         servePort,
			DatabasePath: filepath.Base(serveDatabase),
			JobLogPath:   serveJobLog,
			Placement:    cfg,
		})
		checkErr(svc.Start(ctx))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.PersistentFlags().IntVarP(&servePort, "port", "p", 8089, "Listen port")
	serveCmd.PersistentFlags().StringVarP(&serveDatabase, "database", "d", "classeq-database.cls", "Database file path")
	serveCmd.PersistentFlags().StringVarP(&serveJobLog, "joblog", "", "", "Sqlite job log path (default in-memory)")
}
