package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/LepistaBioinformatics/classeq2/cli/util"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	placeDatabase      string
	placeOutput        string
	placeFormat        string
	placeMinMatches    int
	placeMaxIterations int
	placeNoExclusion   bool
)

// placeCmd represents the place command
var placeCmd = &cobra.Command{
	Use:   "place [fasta]",
	Short: "Place query sequences on the reference tree",
	Long:  "Place query sequences on the reference tree. Reads standard input when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		db := loadDatabase(placeDatabase)

		input := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			checkErr(err)
			defer f.Close()
			input = f
		}
		records, err := seq.ReadAll(input)
		checkErr(err)

		cfg := placer.DefaultConfig()
		cfg.MinMatches = placeMinMatches
		cfg.MaxIterations = placeMaxIterations
		cfg.UseOneVsRestExclusion = !placeNoExclusion
		cfg.Workers = threads()

		results, err := placer.PlaceAll(ctx, db, records, cfg)
		checkErr(err)

		out := io.Writer(os.Stdout)
		if placeOutput != "" {
			f, err := os.Create(placeOutput)
			checkErr(err)
			defer f.Close()
			out = f
		}
		checkErr(writeResults(out, results, placeFormat))
	},
}

func writeResults(w io.Writer, results []placer.QueryResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, result := range results {
			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		return yaml.NewEncoder(w).Encode(results)
	case "tsv":
		headers := []string{"Query", "Status", "Node", "Reason", "OneLen", "RestLen"}
		data := make([][]string, 0, len(results))
		for _, result := range results {
			status := colorStatus(result)
			data = append(data, []string{
				result.Query,
				status,
				strconv.Itoa(int(result.Placement.Node)),
				result.Placement.Reason,
				strconv.Itoa(result.Placement.OneLen),
				strconv.Itoa(result.Placement.RestLen),
			})
		}
		util.PrintTable(w, headers, data)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func colorStatus(result placer.QueryResult) string {
	if result.Error != "" {
		return color.RedString("Error")
	}
	switch result.Placement.Status {
	case placer.StatusIdentityFound:
		return color.GreenString(string(result.Placement.Status))
	case placer.StatusUnclassifiable:
		return color.RedString(string(result.Placement.Status))
	default:
		return color.YellowString(string(result.Placement.Status))
	}
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.PersistentFlags().StringVarP(&placeDatabase, "database", "d", "classeq-database.cls", "Database file path")
	placeCmd.PersistentFlags().StringVarP(&placeOutput, "output", "o", "", "Output file path (default stdout)")
	placeCmd.PersistentFlags().StringVarP(&placeFormat, "format", "f", "json", "Output format (json, yaml, tsv)")
	placeCmd.PersistentFlags().IntVarP(&placeMinMatches, "min-matches", "", 2, "Minimum overlapping k-mers to attempt placement")
	placeCmd.PersistentFlags().IntVarP(&placeMaxIterations, "max-iterations", "", 1000, "Descent iteration cap")
	placeCmd.PersistentFlags().BoolVarP(&placeNoExclusion, "no-one-vs-rest", "", false, "Disable one-vs-rest exclusion")
}
