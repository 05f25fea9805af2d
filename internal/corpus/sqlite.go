package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
)

// LoadSQLite reads a corpus written by the import pipeline
func LoadSQLite(repo database.RepositoryInterface) (*Data, error) {
	chars, err := repo.ListChars()
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	pingshui, err := tableFromRows(chars, func(c database.PingshuiChar) (string, []byte) {
		return c.Char, c.Classes
	})
	if err != nil {
		return nil, fmt.Errorf("pingshui_chars: %w", err)
	}

	overrides, err := repo.ListOverrides()
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	cilin, err := tableFromRows(overrides, func(o database.CilinOverride) (string, []byte) {
		return o.Char, o.Classes
	})
	if err != nil {
		return nil, fmt.Errorf("cilin_overrides: %w", err)
	}

	rows, err := repo.ListCipai()
	if err != nil {
		return nil, fmt.Errorf("failed to list cipai: %w", err)
	}
	templates := make([]*cipai.Template, 0, len(rows))
	for _, row := range rows {
		t, err := TemplateFromRow(row)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return &Data{Pingshui: pingshui, Cilin: cilin, Templates: templates}, nil
}

func tableFromRows[T any](rows []T, fields func(T) (string, []byte)) (map[rune][]int, error) {
	raw := make(map[string][]int, len(rows))
	for _, row := range rows {
		char, classes := fields(row)
		var cs []int
		if err := json.Unmarshal(classes, &cs); err != nil {
			return nil, fmt.Errorf("classes of %q: %w", char, err)
		}
		raw[char] = cs
	}
	return charTable(raw)
}

// TemplateFromRow converts a stored template back to its corpus form
func TemplateFromRow(row database.Cipai) (*cipai.Template, error) {
	t := &cipai.Template{ID: int(row.ID)}
	if err := json.Unmarshal(row.Names, &t.Names); err != nil {
		return nil, fmt.Errorf("names of cipai %d: %w", row.ID, err)
	}
	if len(row.NamesTrad) > 0 {
		if err := json.Unmarshal(row.NamesTrad, &t.NamesTrad); err != nil {
			return nil, fmt.Errorf("traditional names of cipai %d: %w", row.ID, err)
		}
	}
	for _, v := range row.Variants {
		variant := cipai.Variant{
			Example:         v.Example,
			Rule:            v.Rule,
			Description:     v.Description,
			Padding:         v.Padding,
			TrailingOblique: v.TrailingOblique,
		}
		if cipai.Pu(v.Pu) == cipai.PuLong {
			t.Long = append(t.Long, variant)
		} else {
			t.Qin = append(t.Qin, variant)
		}
	}
	return t, nil
}
