// Package ci checks a ci (词) against the variants of its tune template.
package ci

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
	"github.com/palemoky/chinese-poetry-rhythm/internal/report"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// VariantNotice opens a report whose requested variant was not confirmed.
const VariantNotice = "给定格式与实际相差过大或没有此格式，将另行匹配。"

// keepRatio drops unnamed candidates whose best overlap falls below this
// share of the best overlap of any template.
const keepRatio = 0.9

// Templates is the template lookup the engine needs. *corpus.Corpus
// implements it.
type Templates interface {
	Template(nameOrID string) (*cipai.Template, bool)
	TemplatesByLength(n int, pu cipai.Pu) []*cipai.Template
	Compiled(t *cipai.Template, pu cipai.Pu) []*cipai.Compiled
}

// Request is one ci check.
type Request struct {
	Book rhyme.Book
	// Name is a template name or id. Empty searches every template with a
	// variant of the input's length.
	Name string
	// Content holds the Han characters of the ci.
	Content string
	// Punctuated is the ci with its clause-breaking punctuation.
	Punctuated string
	// Variant optionally selects a variant by its 1-based number.
	Variant string
	Pu      cipai.Pu
}

// Engine checks ci. It is safe for concurrent use.
type Engine struct {
	templates Templates
	log       *zap.Logger
}

// NewEngine creates a ci engine over a template source
func NewEngine(templates Templates) *Engine {
	return &Engine{templates: templates, log: logger.Named("ci")}
}

type match struct {
	template  *cipai.Template
	confirmed []candidate
}

// Check renders the report of a ci. It returns a *errors.CheckError when the
// ci cannot be matched to a template variant.
func (e *Engine) Check(req Request) (string, error) {
	content := []rune(req.Content)
	n := len(content)
	pu := req.Pu
	if pu != cipai.PuLong {
		pu = cipai.PuQin
	}
	named := strings.TrimSpace(req.Name) != ""

	var templates []*cipai.Template
	if named {
		t, ok := e.templates.Template(req.Name)
		if !ok {
			return "", apperrors.Ci(apperrors.CiUnknownName, n)
		}
		if len(t.Variants(pu)) == 0 {
			return "", apperrors.Ci(apperrors.CiNoLongRecord, n)
		}
		templates = []*cipai.Template{t}
	} else {
		templates = e.templates.TemplatesByLength(n, pu)
		if len(templates) == 0 {
			return "", apperrors.Ci(apperrors.CiNoTemplate, n)
		}
	}

	breaks := hanzi.Breaks(req.Punctuated)
	var matches []match
	best := 0.0
	for _, t := range templates {
		confirmed := confirm(e.templates.Compiled(t, pu), n, breaks)
		for _, c := range confirmed {
			e.log.Debug("Variant confirmed",
				zap.String("template", t.Name()),
				zap.Int("variant", c.index),
				zap.Float64("overlap", c.overlap),
			)
		}
		if len(confirmed) == 0 {
			if named {
				return "", apperrors.Ci(apperrors.CiNoVariant, n)
			}
			continue
		}
		matches = append(matches, match{template: t, confirmed: confirmed})
		best = max(best, bestOverlap(confirmed))
	}
	if len(matches) == 0 {
		return "", apperrors.Ci(apperrors.CiNoTemplate, n)
	}

	result := ""
	for _, m := range matches {
		if !named && bestOverlap(m.confirmed) < keepRatio*best {
			continue
		}
		chosen, notice, err := selectVariant(m.confirmed, req.Variant, n)
		if err != nil {
			return "", err
		}

		text := ""
		for _, c := range chosen {
			text = report.Pick(text, renderVariant(req.Book, c, content))
		}
		if notice {
			text = VariantNotice + "\n" + text
		}
		if !named {
			text = m.template.Name() + "\n" + text
		}
		result = report.Pick(result, text)
	}
	return result, nil
}

// selectVariant narrows the confirmed variants to the requested one. A
// requested variant that is out of range or not confirmed falls back to all
// confirmed variants and reports notice.
func selectVariant(confirmed []candidate, requested string, n int) ([]candidate, bool, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return confirmed, false, nil
	}
	if strings.TrimLeft(requested, "0123456789") != "" {
		return nil, false, apperrors.Ci(apperrors.CiBadVariant, n)
	}
	// an all-digit selector too large for int names no variant
	index, err := strconv.Atoi(requested)
	if err != nil {
		return confirmed, true, nil
	}
	for _, c := range confirmed {
		if c.index == index {
			return []candidate{c}, false, nil
		}
	}
	return confirmed, true, nil
}
