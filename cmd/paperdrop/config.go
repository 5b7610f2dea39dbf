package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperdrop/internal/drive"
	"github.com/pdiddy/paperdrop/internal/extract"
	"github.com/pdiddy/paperdrop/internal/history"
	"github.com/pdiddy/paperdrop/internal/notion"
	"github.com/pdiddy/paperdrop/internal/pipeline"
	"github.com/pdiddy/paperdrop/internal/restructure"
	"github.com/pdiddy/paperdrop/pkg/types"
)

const (
	defaultFetchTimeout = 60 * time.Second
	defaultUserAgent    = "paperdrop/0.1"
	defaultMaxRetries   = 3
	defaultHistoryDir   = "history"
)

// documentsDir resolves the documents base directory: flag first, then config.
func documentsDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("documents-dir")
	if cmd.Flags().Changed("documents-dir") || !viper.IsSet("documents_dir") {
		return dir
	}
	return viper.GetString("documents_dir")
}

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	cfg := types.FetchConfig{
		DocumentsDir: documentsDir(cmd),
		MaxRetries:   defaultMaxRetries,
	}
	cfg.Timeout = defaultFetchTimeout
	cfg.UserAgent = defaultUserAgent

	if viper.IsSet("fetch.timeout") {
		cfg.Timeout = viper.GetDuration("fetch.timeout")
	}
	if viper.IsSet("fetch.max_retries") {
		cfg.MaxRetries = viper.GetInt("fetch.max_retries")
	}
	return cfg
}

func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("extraction.backend")
	}
	return types.ExtractionConfig{
		Backend:      types.ExtractionBackend(backend),
		DocumentsDir: documentsDir(cmd),
	}
}

func restructureConfig() types.RestructureConfig {
	cfg := types.RestructureConfig{
		Model:      viper.GetString("restructure.model"),
		APIKey:     openrouterKey(),
		BaseURL:    viper.GetString("restructure.base_url"),
		MaxRetries: defaultMaxRetries,
	}
	if viper.IsSet("restructure.max_retries") {
		cfg.MaxRetries = viper.GetInt("restructure.max_retries")
	}
	return cfg
}

func publishConfig() types.PublishConfig {
	return types.PublishConfig{
		APIKey:     notionKey(),
		APIVersion: viper.GetString("publish.api_version"),
		BaseURL:    viper.GetString("publish.base_url"),
		Timeout:    viper.GetDuration("publish.timeout"),
	}
}

func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{HistoryDir: defaultHistoryDir}
	if viper.IsSet("history.dir") {
		cfg.HistoryDir = viper.GetString("history.dir")
	}
	if viper.IsSet("history.max_results") {
		cfg.MaxResults = viper.GetInt("history.max_results")
	}
	return cfg
}

// newPipeline assembles the full pipeline from configuration. The returned
// store must be closed by the caller; it is nil only on error.
func newPipeline(cmd *cobra.Command) (*pipeline.Pipeline, *history.Store, error) {
	extractor, err := extract.NewExtractor(extractionConfig(cmd))
	if err != nil {
		return nil, nil, err
	}

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return nil, nil, err
	}

	rcfg := restructureConfig()
	out := cmd.OutOrStdout()
	p := &pipeline.Pipeline{
		Fetcher:    drive.NewClient(fetchConfig(cmd)),
		Extractor:  extractor,
		Backend:    restructure.NewOpenRouterBackend(rcfg),
		Publisher:  notion.NewPublisher(notion.NewClient(publishConfig()), out),
		History:    store,
		MaxRetries: rcfg.MaxRetries,
		Out:        out,
	}
	return p, store, nil
}
