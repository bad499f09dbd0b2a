package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jefflaplante/padatious-go/internal/config"
	"github.com/jefflaplante/padatious-go/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dataDir  string
	language string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:     "padatious",
	Short:   "padatious - a neural intent and entity parser",
	Long:    `padatious trains and queries bag-of-token intent/entity classifiers against short natural-language utterances.`,
	Version: version.Full(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("padatious %s\n", version.Full())
		info := version.GetBuildInfo()
		if info.GitCommit != "unknown" {
			fmt.Printf("Git commit: %s\n", info.GitCommit)
		}
		fmt.Printf("Go version: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.padatious/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "cache directory override (env PADATIOUS_DATA_DIR takes precedence)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "language subdirectory (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the CLI's own config file, creating a default one on
// first run. The core engine packages never see this struct directly.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = home + "/.padatious/config.json"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.CacheDir = dataDir
	}
	if language != "" {
		cfg.Language = language
	}
	return cfg, nil
}

func main() {
	cobra.OnInitialize(func() {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
