package language

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed templates/tutor-instructions.md
var tutorTemplate string

const vocabularyTemplate = `{
  "language": %q,
  "words": []
}
`

const grammarTemplate = `{
  "language": %q,
  "rules": []
}
`

const overridesTemplate = `{
  "language": %q,
  "difficulty": {
    "level": "auto"
  },
  "preferences": {
    "new_vocab_per_exchange": 2,
    "new_grammar_threshold": 3,
    "show_romanization": true
  },
  "adjustments": []
}
`

// Config is the per-language config.json written once at bootstrap.
type Config struct {
	Language     string `json:"language"`
	NativeScript string `json:"native_script"`
	Romanization string `json:"romanization"`
	Started      string `json:"started"`
}

// bootstrapDir populates a freshly created language directory: tutor
// instructions, the three learner-state documents, config.json, and the
// tracker working directory.
func bootstrapDir(dir, name string, now time.Time) error {
	script := Script(name)
	display := Display(name)

	instructions := strings.NewReplacer(
		"{{LANGUAGE_NAME}}", display,
		"{{LANGUAGE_NATIVE}}", script.NativeScript,
		"{{ROMANIZATION}}", script.Romanization,
		"{{LANGUAGE_SPECIFIC_NOTES}}", Notes(name),
	).Replace(tutorTemplate)

	cfg := Config{
		Language:     display,
		NativeScript: script.NativeScript,
		Romanization: script.Romanization,
		Started:      now.Format("2006-01-02"),
	}
	cfgJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	files := map[string]string{
		"CLAUDE.md":           instructions,
		"vocabulary.json":     fmt.Sprintf(vocabularyTemplate, display),
		"grammar.json":        fmt.Sprintf(grammarTemplate, display),
		"user-overrides.json": fmt.Sprintf(overridesTemplate, display),
		"config.json":         string(cfgJSON) + "\n",
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
	}

	// The tracker agent runs in a subdirectory so the external CLI keeps a
	// conversation history separate from the responder's.
	if err := os.MkdirAll(filepath.Join(dir, ".tracker"), 0755); err != nil {
		return fmt.Errorf("create tracker directory: %w", err)
	}
	return nil
}

// loadConfig reads a language's config.json.
func loadConfig(dir string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return Config{}, fmt.Errorf("read config.json: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config.json: %w", err)
	}
	return cfg, nil
}
