// Package corpus loads the rhyme tables and ci templates and serves them as
// an immutable, concurrency-safe lookup.
package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// Corpus is the loaded corpus. It is read-only after New returns.
type Corpus struct {
	pingshui  *rhyme.Pingshui
	books     map[rhyme.BookID]rhyme.Book
	templates []*cipai.Template
	byID      map[int]*cipai.Template
	compiled  map[*cipai.Template][2][]*cipai.Compiled
	byLength  [2]map[int][]*cipai.Template

	chars, overrides int
}

// Stats summarizes the corpus
type Stats struct {
	Chars        int
	Overrides    int
	Templates    int
	QinVariants  int
	LongVariants int
}

// New builds a corpus, compiling every template variant.
func New(d *Data) (*Corpus, error) {
	ps := rhyme.NewPingshui(d.Pingshui, d.Cilin)
	c := &Corpus{
		pingshui: ps,
		books: map[rhyme.BookID]rhyme.Book{
			rhyme.BookPingshui: ps,
			rhyme.BookXinyun:   rhyme.NewXinyun(),
			rhyme.BookTongyun:  rhyme.NewTongyun(),
		},
		templates: d.Templates,
		byID:      make(map[int]*cipai.Template, len(d.Templates)),
		compiled:  make(map[*cipai.Template][2][]*cipai.Compiled, len(d.Templates)),
		byLength:  [2]map[int][]*cipai.Template{{}, {}},
		chars:     len(d.Pingshui),
		overrides: len(d.Cilin),
	}

	for _, t := range d.Templates {
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %d", t.ID)
		}
		c.byID[t.ID] = t

		var compiled [2][]*cipai.Compiled
		for _, pu := range []cipai.Pu{cipai.PuQin, cipai.PuLong} {
			lengths := map[int]bool{}
			for i, v := range t.Variants(pu) {
				cv, err := cipai.Compile(v)
				if err != nil {
					return nil, fmt.Errorf("%s %s 格%d: %w", t.Name(), pu, i+1, err)
				}
				compiled[pu-1] = append(compiled[pu-1], cv)
				if !lengths[cv.Length] {
					lengths[cv.Length] = true
					c.byLength[pu-1][cv.Length] = append(c.byLength[pu-1][cv.Length], t)
				}
			}
		}
		c.compiled[t] = compiled
	}
	return c, nil
}

// Open loads the corpus from the configured source
func Open(cfg config.DataConfig) (*Corpus, error) {
	var (
		data *Data
		err  error
	)
	switch cfg.Source {
	case config.SourceSQLite:
		db, openErr := database.Open(cfg.SQLitePath)
		if openErr != nil {
			return nil, openErr
		}
		defer db.Close()
		data, err = LoadSQLite(database.NewRepository(db))
	default:
		data, err = LoadDir(cfg.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return New(data)
}

// Book returns a rhyme book by id
func (c *Corpus) Book(id rhyme.BookID) (rhyme.Book, error) {
	b, ok := c.books[id]
	if !ok {
		return nil, fmt.Errorf("unknown rhyme book %d", int(id))
	}
	return b, nil
}

// Pingshui returns rhyme book 1
func (c *Corpus) Pingshui() *rhyme.Pingshui {
	return c.pingshui
}

// Templates returns all templates ordered by id
func (c *Corpus) Templates() []*cipai.Template {
	return c.templates
}

// Template finds a template by simplified or traditional name, or by its
// numeric id.
func (c *Corpus) Template(nameOrID string) (*cipai.Template, bool) {
	nameOrID = strings.TrimSpace(nameOrID)
	if nameOrID == "" {
		return nil, false
	}
	if id, err := strconv.Atoi(nameOrID); err == nil {
		t, ok := c.byID[id]
		return t, ok
	}
	if t := c.findName(nameOrID); t != nil {
		return t, true
	}
	if simplified, err := hanzi.ToSimplified(nameOrID); err == nil && simplified != nameOrID {
		if t := c.findName(simplified); t != nil {
			return t, true
		}
	}
	return nil, false
}

func (c *Corpus) findName(name string) *cipai.Template {
	for _, t := range c.templates {
		if t.HasName(name) {
			return t
		}
	}
	return nil
}

// TemplatesByLength returns the templates having a variant of n characters
// in the given collection, ordered by id.
func (c *Corpus) TemplatesByLength(n int, pu cipai.Pu) []*cipai.Template {
	if pu != cipai.PuQin && pu != cipai.PuLong {
		return nil
	}
	return c.byLength[pu-1][n]
}

// Compiled returns the compiled variants of a template in one collection
func (c *Corpus) Compiled(t *cipai.Template, pu cipai.Pu) []*cipai.Compiled {
	if pu != cipai.PuQin && pu != cipai.PuLong {
		return nil
	}
	return c.compiled[t][pu-1]
}

// Stats summarizes the corpus
func (c *Corpus) Stats() Stats {
	s := Stats{Chars: c.chars, Overrides: c.overrides, Templates: len(c.templates)}
	for _, t := range c.templates {
		s.QinVariants += len(t.Qin)
		s.LongVariants += len(t.Long)
	}
	return s
}
