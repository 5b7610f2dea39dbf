package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdrop/internal/restructure"
)

var restructureCmd = &cobra.Command{
	Use:   "restructure [text-file...]",
	Short: "Restructure extracted text into section-organized Markdown",
	Long: `Send extracted text through the OpenRouter API and write the restructured
Markdown to <documents-dir>/markdown/. With no arguments, every text file
under <documents-dir>/text/ is processed. Files whose Markdown output
already exists are skipped.

Requires an OpenRouter API key (.secrets/openrouter-api-key or
OPENROUTER_API_KEY).`,
	RunE: runRestructure,
}

func init() {
	restructureCmd.Flags().String("model", "", "model identifier (default "+restructure.DefaultModel+")")
	rootCmd.AddCommand(restructureCmd)
}

func runRestructure(cmd *cobra.Command, args []string) error {
	cfg := restructureConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no OpenRouter API key configured (.secrets/openrouter-api-key or OPENROUTER_API_KEY)")
	}

	docsDir := documentsDir(cmd)
	txtPaths := args
	if len(txtPaths) == 0 {
		matches, err := filepath.Glob(filepath.Join(docsDir, "text", "*.txt"))
		if err != nil {
			return fmt.Errorf("listing text files: %w", err)
		}
		txtPaths = matches
	}
	if len(txtPaths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No text files to restructure.")
		return nil
	}

	backend := restructure.NewOpenRouterBackend(cfg)
	out := cmd.OutOrStdout()

	var failed int
	for _, p := range txtPaths {
		if _, err := restructure.RestructureFile(cmd.Context(), backend, p, docsDir, cfg.MaxRetries, out); err != nil {
			failed++
			fmt.Fprintf(out, "failed:  %s (%v)\n", filepath.Base(p), err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to restructure", failed, len(txtPaths))
	}
	return nil
}
