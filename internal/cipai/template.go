// Package cipai holds ci templates (词牌) and compiles their variants into
// tone patterns, rhyme positions and clauses.
package cipai

import (
	"fmt"
	"slices"
)

// Pu selects a template collection.
type Pu int

const (
	// PuQin is the 钦定词谱 collection.
	PuQin Pu = 1
	// PuLong is the 龙榆生《唐宋词格律》 collection.
	PuLong Pu = 2
)

// ParsePu converts a numeric selector into a Pu.
func ParsePu(n int) (Pu, error) {
	if n != int(PuQin) && n != int(PuLong) {
		return 0, fmt.Errorf("unknown template collection %d (must be 1 or 2)", n)
	}
	return Pu(n), nil
}

func (p Pu) String() string {
	if p == PuLong {
		return "龙谱"
	}
	return "钦谱"
}

// Variant is one raw template variant (格) as stored in the corpus.
type Variant struct {
	// Example is a sample ci whose full-width spaces mark the slots of the
	// hint words in Rule.
	Example string `yaml:"example" json:"example"`
	// Rule holds one tone (平/仄/中) per example character, with the hint
	// words (句, 读, 韵, 换仄韵, 叶平韵 ...) written at the slots.
	Rule        string `yaml:"rule" json:"rule"`
	Description string `yaml:"description" json:"description"`
	// Padding counts ornamental rule characters written after each rhyme
	// hint with no counterpart in the example, as in 竹枝 and 采莲子.
	Padding int `yaml:"padding,omitempty" json:"padding,omitempty"`
	// TrailingOblique appends a final oblique character that stands alone
	// after the last clause.
	TrailingOblique bool `yaml:"trailing_oblique,omitempty" json:"trailing_oblique,omitempty"`
}

// Template is a named tune with its variants in both collections.
type Template struct {
	ID        int       `yaml:"id" json:"id"`
	Names     []string  `yaml:"names" json:"names"`
	NamesTrad []string  `yaml:"names_trad" json:"names_trad"`
	Qin       []Variant `yaml:"qin" json:"qin"`
	Long      []Variant `yaml:"long,omitempty" json:"long,omitempty"`
}

// Name returns the primary simplified name.
func (t *Template) Name() string {
	if len(t.Names) == 0 {
		return fmt.Sprintf("词牌%d", t.ID)
	}
	return t.Names[0]
}

// HasName reports whether name is one of the template's simplified or
// traditional names.
func (t *Template) HasName(name string) bool {
	return slices.Contains(t.Names, name) || slices.Contains(t.NamesTrad, name)
}

// Variants returns the variants of the given collection.
func (t *Template) Variants(pu Pu) []Variant {
	if pu == PuLong {
		return t.Long
	}
	return t.Qin
}
