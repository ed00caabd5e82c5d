package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docanalyzer/internal/export"
)

var (
	analyzeXLSXPath string
	analyzeCSVPath  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Analyze a PDF and print the result as JSON",
	Long: `Extract the text of a PDF, send it to the configured completion provider
and print the resulting JSON object. When the reply cannot be parsed the
failure object (error, raw_response, cleaned_attempt) is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeXLSXPath, "xlsx", "", "also write the result to this .xlsx workbook")
	analyzeCmd.Flags().StringVar(&analyzeCSVPath, "csv", "", "also write the result to this .csv file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	p, err := newPipeline(true)
	if err != nil {
		return err
	}

	input, f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	result, err := p.documents.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if analyzeXLSXPath != "" {
		if err := writeFile(analyzeXLSXPath, func(w *os.File) error { return export.WriteXLSX(w, result) }); err != nil {
			return err
		}
	}
	if analyzeCSVPath != "" {
		if err := writeFile(analyzeCSVPath, func(w *os.File) error { return export.WriteCSV(w, result) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
