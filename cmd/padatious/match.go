package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jefflaplante/padatious-go/internal/datadir"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/intents"
	"github.com/spf13/cobra"
)

var matchIntentNames []string

var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Match a query against previously trained intents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMatch(args[0])
	},
}

func init() {
	matchCmd.Flags().StringSliceVar(&matchIntentNames, "intent", nil, "intent name to load (repeatable); defaults to every artifact found")
}

func runMatch(query string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dd, err := datadir.New(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	langDir, err := dd.EnsureLanguage(lang)
	if err != nil {
		return fmt.Errorf("ensure language directory: %w", err)
	}

	backing, err := store.NewFileStore(langDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}
	defer backing.Close()

	names := matchIntentNames
	if len(names) == 0 {
		names, err = discoverIntentNames(langDir)
		if err != nil {
			return fmt.Errorf("discover trained intents: %w", err)
		}
	}

	container := intents.New(backing, nil)
	for _, name := range names {
		if err := container.LoadIntent(name); err != nil {
			return fmt.Errorf("load intent %q: %w", name, err)
		}
	}

	result := container.CalcIntent(query)
	return printJSON(result)
}

// discoverIntentNames finds every "<name>.intent.ids" artifact in dir and
// returns its name.
func discoverIntentNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".intent.ids") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".intent.ids"))
		}
	}
	return names, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
