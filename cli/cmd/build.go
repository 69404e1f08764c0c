package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/index"
	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/spf13/cobra"
)

var (
	buildOutput     string
	buildKSize      int
	buildMSize      int
	buildMinSupport float64
	buildFormat     string
)

// buildCmd represents the build-db command
var buildCmd = &cobra.Command{
	Use:   "build-db [tree] [fasta]",
	Short: "Build a placement database from a newick tree and reference FASTA",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		treePath, fastaPath := args[0], args[1]

		format, err := database.ParseFormat(buildFormat)
		checkErr(err)
		checkErr(kmer.ValidateSizes(buildKSize, buildMSize))

		treeText, err := os.ReadFile(treePath)
		checkErr(err)
		tree, err := phylo.ParseTree(filepath.Base(treePath), string(treeText), buildMinSupport)
		checkErr(err)

		fasta, err := os.Open(fastaPath)
		checkErr(err)
		defer fasta.Close()
		records, err := seq.ReadAll(fasta)
		checkErr(err)

		kmersMap, err := index.Build(ctx, tree, records, buildKSize, buildMSize, threads())
		checkErr(err)
		db := database.New(tree, kmersMap)

		data, err := database.EncodeBytes(db, format)
		checkErr(err)
		store := storage.NewDirectoryStore(filepath.Dir(buildOutput))
		checkErr(store.Put(ctx, filepath.Base(buildOutput), data))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.PersistentFlags().StringVarP(&buildOutput, "output", "o", "classeq-database.cls", "Output file path")
	buildCmd.PersistentFlags().IntVarP(&buildKSize, "k-size", "k", kmer.DefaultK, "K-mer size")
	buildCmd.PersistentFlags().IntVarP(&buildMSize, "m-size", "m", kmer.DefaultM, "Minimizer size")
	buildCmd.PersistentFlags().Float64VarP(&buildMinSupport, "min-branch-support", "s", 70, "Minimum branch support")
	buildCmd.PersistentFlags().StringVarP(&buildFormat, "format", "f", "bin", "Output format (bin, json, yaml)")
}
