package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <drive-url>",
	Short: "Run the full pipeline: fetch, extract, restructure, publish",
	Long: `Run every pipeline stage for one Google Drive sharing link: download the
PDF, extract its text, restructure it into section-organized Markdown, and
append the result as typed blocks to a Notion page. Without --page the run
stops at the restructured Markdown.

The run is recorded in history either way. Requires an OpenRouter API key,
and a Notion integration token when --page is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("page", "", "Notion page ID to append blocks to")
	publishCmd.Flags().String("backend", "", "extraction backend: native or markitdown (default native)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	pageID, _ := cmd.Flags().GetString("page")

	p, store, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := p.Run(cmd.Context(), args[0], pageID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Published {
		fmt.Fprintf(out, "published %d block(s) to page %s\n", result.Blocks, pageID)
	} else {
		fmt.Fprintf(out, "restructured Markdown ready (%d characters); no page given, publish skipped\n", len(result.Markdown))
	}
	return nil
}
