// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperdrop CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperdrop/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault resolves a credential: explicit config wins, then the
// .secrets/ file named key, then the environment variable env.
func secretDefault(key, env, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return os.Getenv(env)
}

// openrouterKey resolves the OpenRouter API key from config, secrets, or env.
func openrouterKey() string {
	return secretDefault("openrouter-api-key", "OPENROUTER_API_KEY", viper.GetString("restructure.api_key"))
}

// notionKey resolves the Notion integration token from config, secrets, or env.
func notionKey() string {
	return secretDefault("notion-api-key", "NOTION_API_KEY", viper.GetString("publish.api_key"))
}

// rootCmd is the base command for the paperdrop CLI.
var rootCmd = &cobra.Command{
	Use:   "paperdrop",
	Short: "Convert Drive-shared PDFs to structured Markdown and Notion pages",
	Long: `paperdrop turns a PDF behind a Google Drive sharing link into structured,
section-organized Markdown, and can publish the result as typed blocks onto
a Notion page.

Each pipeline stage is a subcommand: fetch, extract, restructure, publish.
Use serve to run the pipeline as an HTTP service and history to inspect
past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional local configuration; a missing file is fine.
		godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperdrop.yaml or ~/.config/paperdrop/config.yaml)")
	rootCmd.PersistentFlags().String("documents-dir", "documents", "base directory for documents (contains raw/, text/, markdown/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperdrop")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperdrop"))
		}
	}

	viper.SetEnvPrefix("PAPERDROP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
