package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Print the text extracted from a PDF",
	Long:  "Extract the text of every page of a PDF, in order, without calling the completion provider.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	p, err := newPipeline(false)
	if err != nil {
		return err
	}

	input, f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	text, err := p.documents.ExtractText(ctx, input)
	if err != nil {
		return fmt.Errorf("extract %s: %w", args[0], err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
