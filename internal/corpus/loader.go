package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
)

// Files of a corpus directory
const (
	PingshuiFile = "pingshui.json"
	CilinFile    = "cilin.json"
	CipaiDir     = "cipai"
)

// Data is the raw corpus as read from disk or from the database
type Data struct {
	Pingshui  map[rune][]int
	Cilin     map[rune][]int
	Templates []*cipai.Template
}

// LoadDir reads a corpus directory: the 平水韵 table, the optional 词林
// overrides, and every template file under cipai/.
func LoadDir(dir string) (*Data, error) {
	pingshui, err := readCharTable(filepath.Join(dir, PingshuiFile))
	if err != nil {
		return nil, err
	}

	cilin := map[rune][]int{}
	cilinPath := filepath.Join(dir, CilinFile)
	if _, err := os.Stat(cilinPath); err == nil {
		if cilin, err = readCharTable(cilinPath); err != nil {
			return nil, err
		}
	}

	templates, err := readTemplates(filepath.Join(dir, CipaiDir))
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded corpus directory",
		zap.String("dir", dir),
		zap.Int("chars", len(pingshui)),
		zap.Int("overrides", len(cilin)),
		zap.Int("templates", len(templates)),
	)

	return &Data{Pingshui: pingshui, Cilin: cilin, Templates: templates}, nil
}

// readCharTable reads a JSON object mapping single characters to classes
func readCharTable(path string) (map[rune][]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return charTable(raw)
}

func charTable(raw map[string][]int) (map[rune][]int, error) {
	table := make(map[rune][]int, len(raw))
	for key, classes := range raw {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("table key %q is not a single character", key)
		}
		table[r[0]] = classes
	}
	return table, nil
}

// readTemplates reads every YAML file of dir. Each file holds a list of
// templates.
func readTemplates(dir string) ([]*cipai.Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var templates []*cipai.Template
	seen := map[int]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		var fileTemplates []*cipai.Template
		if err := yaml.Unmarshal(data, &fileTemplates); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
		for _, t := range fileTemplates {
			if prev, ok := seen[t.ID]; ok {
				return nil, fmt.Errorf("template id %d in %s already used by %s", t.ID, entry.Name(), prev)
			}
			seen[t.ID] = entry.Name()
			templates = append(templates, t)
		}
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

// SortedChars returns the characters of a table in code point order
func SortedChars(table map[rune][]int) []rune {
	chars := make([]rune, 0, len(table))
	for r := range table {
		chars = append(chars, r)
	}
	slices.Sort(chars)
	return chars
}
