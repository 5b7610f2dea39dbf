package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdrop/internal/drive"
)

const defaultFetchDelay = 2 * time.Second

var fetchCmd = &cobra.Command{
	Use:   "fetch [drive-url...]",
	Short: "Download PDFs behind Google Drive sharing links",
	Long: `Resolve one or more Google Drive sharing links and download the referenced
PDFs into <documents-dir>/raw/. Files already present on disk are skipped.
A metadata record is written beside each download.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("delay", defaultFetchDelay, "pause between downloads")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	client := drive.NewClient(fetchConfig(cmd))
	out := cmd.OutOrStdout()

	var fetched, skipped, failed int
	for i, rawURL := range args {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		doc, wasSkipped, err := client.FetchDocument(cmd.Context(), rawURL, out)
		if err != nil {
			failed++
			fmt.Fprintf(out, "failed:  %s (%v)\n", rawURL, err)
			continue
		}
		if wasSkipped {
			skipped++
			continue
		}
		fetched++
		fmt.Fprintf(out, "fetched: %s (%d bytes)\n", doc.FileID, doc.Size)
	}

	fmt.Fprintf(out, "\nFetch summary: %d fetched, %d skipped, %d failed\n", fetched, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d download(s) failed", failed, len(args))
	}
	return nil
}
