package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdrop/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf...]",
	Short: "Extract plain text from downloaded PDFs",
	Long: `Extract text from PDF files into <documents-dir>/text/. With no arguments,
every PDF under <documents-dir>/raw/ is processed. PDFs whose text output
already exists are skipped.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("backend", "", "extraction backend: native or markitdown (default native)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(cmd)

	pdfPaths := args
	if len(pdfPaths) == 0 {
		matches, err := filepath.Glob(filepath.Join(cfg.DocumentsDir, "raw", "*.pdf"))
		if err != nil {
			return fmt.Errorf("listing PDFs: %w", err)
		}
		pdfPaths = matches
	}
	if len(pdfPaths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No PDFs to extract.")
		return nil
	}

	extractor, err := extract.NewExtractor(cfg)
	if err != nil {
		return err
	}

	result := extract.ExtractBatch(extractor, pdfPaths, cfg, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d of %d extraction(s) failed", result.Failed, result.Total())
	}
	return nil
}
