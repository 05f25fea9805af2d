package cipai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

// hintRe matches one hint word at the start of the remaining rule text.
var hintRe = regexp.MustCompile(`^(?:换|叶|叠|增|藏|暗)?(?:平|仄|上|去|入)?声?(?:韵|句|读|叶|叠)`)

const trailingRule = "仄句"

// Hint is a hint word and the index of the character it follows.
type Hint struct {
	Pos  int
	Word string
}

// Rhyme is a rhyme position of a compiled variant.
type Rhyme struct {
	Pos     int
	Word    string
	Section int
	// Group numbers rhyme groups from 1 in order of first position.
	Group int
	// Borrowed marks a 叶 position whose tone differs from its group's.
	Borrowed bool
}

// Clause is a run of characters ending at a rhyme position, or the trailing
// run after the last one.
type Clause struct {
	// Rule is the clause's rule text, hint words included.
	Rule string
	// Example is the clause's example text with inner slots kept.
	Example string
	// Start and End delimit the clause's characters: [Start, End).
	Start, End int
	// Rhyme indexes Compiled.Rhymes, or is -1 for a trailing clause.
	Rhyme int
}

// Compiled is a variant prepared for checking.
type Compiled struct {
	Variant

	// Pattern has one of 平, 仄 or 中 per character.
	Pattern  string
	Length   int
	Hints    []Hint
	Sections []int
	Rhymes   []Rhyme
	Clauses  []Clause
	// Breaks holds the clause-break positions of the example text.
	Breaks []int

	unknown []string
}

// Compile walks the example and rule of v in lockstep.
func Compile(v Variant) (*Compiled, error) {
	ex := []rune(v.Example)
	rule := []rune(v.Rule)
	c := &Compiled{Variant: v}

	var (
		pattern     []rune
		clauseRule  []rune
		clauseEx    []rune
		clauseStart int
		ri          int
	)
	for i := 0; i < len(ex); {
		if ex[i] != hanzi.ClauseMark {
			if ri >= len(rule) {
				return nil, fmt.Errorf("rule ends before example character %d", len(pattern))
			}
			pattern = append(pattern, patternOf(rule[ri]))
			clauseRule = append(clauseRule, rule[ri])
			clauseEx = append(clauseEx, ex[i])
			ri++
			i++
			continue
		}

		rhymed := false
		for ; i < len(ex) && ex[i] == hanzi.ClauseMark; i++ {
			word, n, known := nextHint(rule[ri:])
			if n == 0 {
				return nil, fmt.Errorf("rule has no hint word for the slot after character %d", len(pattern))
			}
			if !known {
				c.unknown = append(c.unknown, word)
			}
			clauseRule = append(clauseRule, rule[ri:ri+n]...)
			ri += n
			clauseEx = append(clauseEx, hanzi.ClauseMark)

			pos := len(pattern) - 1
			if pos < 0 {
				continue
			}
			c.Hints = append(c.Hints, Hint{Pos: pos, Word: word})
			if IsRhymeHint(word) {
				c.Rhymes = append(c.Rhymes, Rhyme{Pos: pos, Word: word})
				rhymed = true
			}
		}
		if !rhymed {
			continue
		}

		pad := min(v.Padding, len(rule)-ri)
		clauseRule = append(clauseRule, rule[ri:ri+pad]...)
		ri += pad
		c.Clauses = append(c.Clauses, Clause{
			Rule:    string(clauseRule),
			Example: trimMarks(clauseEx),
			Start:   clauseStart,
			End:     len(pattern),
			Rhyme:   len(c.Rhymes) - 1,
		})
		clauseRule, clauseEx = nil, nil
		clauseStart = len(pattern)
	}
	if ri < len(rule) {
		return nil, fmt.Errorf("rule has %d characters past the end of the example", len(rule)-ri)
	}
	if clauseStart < len(pattern) {
		c.Clauses = append(c.Clauses, Clause{
			Rule:    string(clauseRule),
			Example: trimMarks(clauseEx),
			Start:   clauseStart,
			End:     len(pattern),
			Rhyme:   -1,
		})
	}
	if v.TrailingOblique {
		c.Clauses = append(c.Clauses, Clause{
			Rule:  trailingRule,
			Start: len(pattern),
			End:   len(pattern) + 1,
			Rhyme: -1,
		})
		pattern = append(pattern, '仄')
	}
	if len(pattern) == 0 {
		return nil, fmt.Errorf("variant has no characters")
	}

	c.Pattern = string(pattern)
	c.Length = len(pattern)
	c.Breaks = hanzi.Breaks(v.Example)
	c.Sections = ParseSections(v.Description)
	c.assignSections()
	c.classify(pattern)
	return c, nil
}

// IsRhymeHint reports whether a hint word marks a rhyme position.
func IsRhymeHint(word string) bool {
	return strings.ContainsAny(word, "韵叶")
}

func nextHint(rule []rune) (word string, n int, known bool) {
	if len(rule) == 0 {
		return "", 0, false
	}
	if m := hintRe.FindString(string(rule)); m != "" {
		return m, len([]rune(m)), true
	}
	return string(rule[0]), 1, false
}

func patternOf(r rune) rune {
	switch r {
	case '平', '仄':
		return r
	default:
		return '中'
	}
}

func trimMarks(rs []rune) string {
	return strings.Trim(string(rs), string(hanzi.ClauseMark))
}

// assignSections hands out rhyme positions to sections by their declared
// counts. Positions past the declared total go to the last section.
func (c *Compiled) assignSections() {
	section, bound := 0, 0
	for i := range c.Rhymes {
		for section < len(c.Sections)-1 && i >= bound+c.Sections[section] {
			bound += c.Sections[section]
			section++
		}
		c.Rhymes[i].Section = section
	}
}

// Groups returns the number of rhyme groups.
func (c *Compiled) Groups() int {
	n := 0
	for _, r := range c.Rhymes {
		n = max(n, r.Group)
	}
	return n
}

// Fill lays content over the clause's example, keeping the slots. content
// must hold Length characters.
func (c *Compiled) Fill(cl Clause, content []rune) string {
	if cl.Example == "" {
		return string(content[cl.Start:cl.End])
	}
	var b strings.Builder
	i := cl.Start
	for _, r := range cl.Example {
		if r == hanzi.ClauseMark {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(content[i])
		i++
	}
	return b.String()
}
