package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperdrop/internal/server"
)

const defaultAddr = ":8000"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion pipeline as an HTTP service",
	Long: `Start an HTTP server exposing the pipeline. POST a Google Drive URL to
/convert-from-url to receive the restructured Markdown; include a page_id
to also publish the blocks to Notion.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address")
	serveCmd.Flags().String("backend", "", "extraction backend: native or markitdown (default native)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") && viper.IsSet("server.addr") {
		addr = viper.GetString("server.addr")
	}

	p, store, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := server.New(p, logger)

	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
