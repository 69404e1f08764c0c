package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/LepistaBioinformatics/classeq2/cli/util"
	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/storage"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeFormat string

// describeCmd represents the describe-db command
var describeCmd = &cobra.Command{
	Use:   "describe-db [database]",
	Short: "Emit database summary statistics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := loadDatabase(args[0])
		description := db.Describe()

		switch describeFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			checkErr(enc.Encode(description))
		case "yaml":
			checkErr(yaml.NewEncoder(os.Stdout).Encode(description))
		case "tsv":
			headers := []string{"Field", "Value"}
			data := [][]string{
				{"ID", description.ID},
				{"Name", description.Name},
				{"MinBranchSupport", strconv.FormatFloat(description.MinBranchSupport, 'g', -1, 64)},
				{"K", strconv.Itoa(description.K)},
				{"M", strconv.Itoa(description.M)},
				{"Nodes", strconv.Itoa(description.Nodes)},
				{"Leaves", strconv.Itoa(description.Leaves)},
				{"Kmers", strconv.Itoa(description.Kmers)},
				{"Minimizers", strconv.Itoa(description.Minimizers)},
				{"SmallestBucket", strconv.Itoa(description.SmallestBucket)},
				{"LargestBucket", strconv.Itoa(description.LargestBucket)},
				{"AverageBucket", strconv.FormatFloat(description.AverageBucket, 'f', 2, 64)},
				{"InMemorySize", description.InMemorySize},
			}
			util.PrintTable(os.Stdout, headers, data)
		default:
			bailf("unknown output format: %s", describeFormat)
		}
	},
}

// loadDatabase reads a database file through the storage layer.
func loadDatabase(path string) *database.Database {
	store := storage.NewDirectoryStore(filepath.Dir(path))
	data, err := store.Get(context.Background(), filepath.Base(path))
	checkErr(err)
	db, err := database.DecodeBytes(data)
	if err != nil {
		bailf("failed to load database %s: %v", path, err)
	}
	return db
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.PersistentFlags().StringVarP(&describeFormat, "format", "f", "tsv", "Output format (json, yaml, tsv)")
}
