package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataloom/internal/pipeline"
	"github.com/KaramelBytes/dataloom/internal/report"
	"github.com/KaramelBytes/dataloom/internal/utils"
)

var (
	anaPDFFolder  string
	anaOutputPath string
	anaMaxCats    int
	anaNoReport   bool
	anaJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Clean a CSV/Excel dataset and produce an EDA summary and report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		maxCats := anaMaxCats
		if maxCats <= 0 && cfg != nil {
			maxCats = cfg.MaxCategories
		}
		var gen report.Generator
		if !anaNoReport {
			gen = newGenerator()
		}
		runner := pipeline.NewRunner(gen, nil, maxCats)

		res, err := runner.Run(cmd.Context(), path, anaPDFFolder)
		if err != nil {
			return err
		}
		tab := res.Tabular
		if tab == nil {
			return fmt.Errorf("pipeline returned no tabular result")
		}

		fmt.Printf("✓ Cleaned %d×%d -> %d×%d\n",
			tab.Raw.Rows(), len(tab.Raw.Cols), tab.Cleaned.Rows(), len(tab.Cleaned.Cols))

		var out []byte
		if anaJSON || anaNoReport {
			out, err = utils.PrettyJSON(tab.Summary)
			if err != nil {
				return err
			}
		} else {
			out = []byte(tab.ReportMarkdown)
		}
		if res.Executive != "" {
			out = append(out, []byte("\n\n---\n\n"+res.Executive)...)
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaPDFFolder, "pdf-folder", "", "folder of PDFs to summarize alongside the dataset")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the result")
	analyzeCmd.Flags().IntVar(&anaMaxCats, "max-categories", 0, "max categorical values per column in the summary (default from config)")
	analyzeCmd.Flags().BoolVar(&anaNoReport, "no-report", false, "skip the LLM report and print the structured summary only")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "print the structured summary as JSON instead of the report")
}
