package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/kmer"
	"github.com/LepistaBioinformatics/classeq2/phylo"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	convertOutput     string
	convertFormat     string
	convertMinSupport float64
	convertKSize      int
)

// convertCmd represents the convert command group
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "File conversion related commands",
}

var convertDatabaseCmd = &cobra.Command{
	Use:   "database [input]",
	Short: "Convert a database between binary and text encodings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, err := database.ParseFormat(convertFormat)
		checkErr(err)

		db := loadDatabase(args[0])
		out := os.Stdout
		if convertOutput != "" {
			f, err := os.Create(convertOutput)
			checkErr(err)
			defer f.Close()
			out = f
		}
		checkErr(database.Encode(out, db, format))
	},
}

var convertTreeCmd = &cobra.Command{
	Use:   "tree [tree]",
	Short: "Serialize a newick tree to JSON or YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, err := os.ReadFile(args[0])
		checkErr(err)
		tree, err := phylo.ParseTree(filepath.Base(args[0]), string(text), convertMinSupport)
		checkErr(err)

		var content []byte
		switch convertFormat {
		case "json":
			content, err = json.MarshalIndent(tree, "", "  ")
		case "yaml":
			content, err = yaml.Marshal(tree)
		default:
			err = fmt.Errorf("unknown output format: %s", convertFormat)
		}
		checkErr(err)

		if convertOutput != "" {
			checkErr(os.WriteFile(convertOutput, content, 0o644))
			return
		}
		fmt.Println(string(content))
	},
}

var convertKmersCmd = &cobra.Command{
	Use:   "kmers [sequence]",
	Short: "Print the canonical k-mer hashes of a sequence",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		checkErr(kmer.ValidateSizes(convertKSize, kmer.DefaultM))
		scanner := kmer.NewScanner(seq.Canonicalize(args[0]), convertKSize, kmer.DefaultM)
		for {
			km, ok := scanner.Next()
			if !ok {
				return
			}
			fmt.Println(km.Hash)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertDatabaseCmd)
	convertCmd.AddCommand(convertTreeCmd)
	convertCmd.AddCommand(convertKmersCmd)

	convertCmd.PersistentFlags().StringVarP(&convertOutput, "output", "o", "", "Output file path (default stdout)")
	convertCmd.PersistentFlags().StringVarP(&convertFormat, "format", "f", "yaml", "Output format")
	convertTreeCmd.PersistentFlags().Float64VarP(&convertMinSupport, "min-branch-support", "s", 70, "Minimum branch support")
	convertKmersCmd.PersistentFlags().IntVarP(&convertKSize, "k-size", "k", kmer.DefaultK, "K-mer size")
}
