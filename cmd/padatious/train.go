package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jefflaplante/padatious-go/internal/datadir"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/intents"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var trainCmd = &cobra.Command{
	Use:   "train <samples-dir>",
	Short: "Train intents and entities from a directory of sample files",
	Long: `train reads every "<name>.intent", "<name>.entity", "<name>.intent.yml",
and "<name>.entity.yml" file in samples-dir, registers them, and trains the
container, persisting artifacts under the resolved cache directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(args[0])
	},
}

func runTrain(samplesDir string) error {
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

	container := intents.New(backing, nil)

	entries, err := os.ReadDir(samplesDir)
	if err != nil {
		return fmt.Errorf("read samples directory: %w", err)
	}

	var nIntents, nEntities int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, kind, samples, err := loadSampleFile(filepath.Join(samplesDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", entry.Name(), err)
			continue
		}
		if name == "" {
			continue
		}
		switch kind {
		case "intent":
			container.AddIntent(name, samples)
			nIntents++
		case "entity":
			container.AddEntity(name, samples)
			nEntities++
		}
	}

	if err := container.Train(); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	fmt.Printf("Trained %d intent(s) and %d entit(y/ies) into %s\n", nIntents, nEntities, langDir)
	return nil
}

// loadSampleFile recognizes "<name>.intent", "<name>.entity",
// "<name>.intent.yml", and "<name>.entity.yml" filenames, returning the
// registration name, its kind ("intent" or "entity"), and its sample
// lines. A file that matches none of these suffixes is silently ignored.
func loadSampleFile(path string) (name, kind string, samples []string, err error) {
	base := filepath.Base(path)

	switch {
	case strings.HasSuffix(base, ".intent.yml"), strings.HasSuffix(base, ".intent.yaml"):
		name = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
		name = strings.TrimSuffix(name, ".intent")
		kind = "intent"
		samples, err = readYAMLLines(path)
	case strings.HasSuffix(base, ".entity.yml"), strings.HasSuffix(base, ".entity.yaml"):
		name = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
		name = strings.TrimSuffix(name, ".entity")
		kind = "entity"
		samples, err = readYAMLLines(path)
	case strings.HasSuffix(base, ".intent"):
		name = strings.TrimSuffix(base, ".intent")
		kind = "intent"
		samples, err = readPlainLines(path)
	case strings.HasSuffix(base, ".entity"):
		name = strings.TrimSuffix(base, ".entity")
		kind = "entity"
		samples, err = readPlainLines(path)
	default:
		return "", "", nil, nil
	}
	return name, kind, samples, err
}

func readPlainLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

func readYAMLLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	if err := yaml.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return lines, nil
}
