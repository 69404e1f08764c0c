package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/spf13/cobra"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "classeq2",
	Short: "alignment-free phylogenetic placement",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(verbosity)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}

// threads returns the worker pool size, overridable through CLSQ_THREADS.
// Zero selects the core count.
func threads() int {
	raw := os.Getenv("CLSQ_THREADS")
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		bailf("malformed CLSQ_THREADS: %s", raw)
	}
	return parsed
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
}
