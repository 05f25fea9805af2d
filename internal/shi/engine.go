// Package shi checks regulated verse (近体诗) against the tone patterns of
// 绝句, 律诗 and 排律 with five or seven characters per line.
package shi

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
	"github.com/palemoky/chinese-poetry-rhythm/internal/report"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// MinLength is the length of the shortest poem, a five-character 绝句.
const MinLength = 20

// Engine checks shi. It holds no state besides its logger and is safe for
// concurrent use.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a shi engine
func NewEngine() *Engine {
	return &Engine{log: logger.Named("shi")}
}

// Check renders the report of content, which must hold Han characters only.
// It returns a *errors.CheckError when the poem cannot be analyzed.
func (e *Engine) Check(book rhyme.Book, content string) (string, error) {
	chars := []rune(content)
	n := len(chars)
	if n < MinLength || (n%10 != 0 && n%14 != 0) {
		return "", apperrors.Shi(apperrors.ShiBadLength, n)
	}

	best := ""
	analyzed := false
	for _, width := range widths(n) {
		p, ok := newPoem(book, chars, width)
		if !ok {
			continue
		}
		analyzed = true
		for _, level := range p.polarities() {
			best = report.Pick(best, e.render(p, level))
		}
	}
	if !analyzed {
		return "", apperrors.Shi(apperrors.ShiNoRhyme, n)
	}
	return best, nil
}

// widths returns the line widths to try for a poem of n characters. A
// multiple of 70 reads both as five and as seven characters per line.
func widths(n int) []int {
	switch {
	case n%70 == 0:
		return []int{5, 7}
	case n%5 == 0:
		return []int{5}
	default:
		return []int{7}
	}
}

// poem is one reading of the input with a fixed line width
type poem struct {
	book  rhyme.Book
	chars []rune
	tones []rhyme.Tone
	width int
	lines int

	// shared holds the classes common to the ends of lines 1 and 2
	shared []int
	// mode is the class most rhyme words belong to
	mode int
	// unknownPolarity is set when every rhyme word is a heteronym
	unknownPolarity bool
}

func newPoem(book rhyme.Book, chars []rune, width int) (*poem, bool) {
	p := &poem{
		book:  book,
		chars: chars,
		tones: make([]rhyme.Tone, len(chars)),
		width: width,
		lines: len(chars) / width,
	}
	for i, ch := range chars {
		p.tones[i] = book.Tone(ch)
	}

	first, second := chars[width-1], chars[2*width-1]
	p.shared = rhyme.Intersect(book.Classes(first), book.Classes(second))
	if len(p.shared) == 0 {
		p.shared = rhyme.Intersect(book.NeighborClasses(first), book.NeighborClasses(second))
	}

	var words []rune
	if len(p.shared) > 0 {
		words = append(words, first)
	}
	for line := 2; line <= p.lines; line += 2 {
		words = append(words, chars[line*width-1])
	}

	mode, ok := modalClass(book, words)
	if !ok {
		return nil, false
	}
	p.mode = mode
	p.unknownPolarity = !slices.ContainsFunc(words, func(r rune) bool {
		return book.Tone(r).Judgeable()
	})
	return p, true
}

// modalClass returns the most frequent class over the rhyme words, the first
// seen winning ties. It reports false when no word has a class.
func modalClass(book rhyme.Book, words []rune) (int, bool) {
	counts := map[int]int{}
	var order []int
	for _, w := range words {
		for _, c := range book.Classes(w) {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}
	if len(order) == 0 {
		return 0, false
	}
	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best, true
}

// polarities lists the polarities to try: level true, oblique false.
func (p *poem) polarities() []bool {
	if p.unknownPolarity {
		return []bool{true, false}
	}
	return []bool{p.book.IsLevel(p.mode)}
}

func (p *poem) line(i int) ([]rune, []rhyme.Tone) {
	start := i * p.width
	return p.chars[start : start+p.width], p.tones[start : start+p.width]
}

func (p *poem) kind() string {
	switch p.lines {
	case 4:
		return "绝句"
	case 8:
		return "律诗"
	default:
		return "排律"
	}
}

// render checks the poem under one polarity and writes the report
func (e *Engine) render(p *poem, level bool) string {
	_, firstTones := p.line(0)
	_, secondTones := p.line(1)
	rhyming := firstRhyming(firstTones[p.width-1], secondTones[p.width-1], level)

	tails := make([][]rhyme.Tone, p.lines)
	for i := range p.lines {
		_, tones := p.line(i)
		tails[i] = tones[p.width-5:]
	}
	first := inferFirst(tails, rhyming != 0, level)
	if p.width == 7 {
		first += sevenOffset
	}
	first, rhyming = correctFirst(first, rhyming, len(p.shared) > 0, firstTones)
	codes := lineCodes(first, p.lines, rhyming != 0, level)

	e.log.Debug("Shi reading",
		zap.Int("width", p.width),
		zap.Bool("level", level),
		zap.Int("mode", p.mode),
		zap.Int("first_rhyming", rhyming),
		zap.Ints("codes", codes),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s言%s\n", hanzi.Numeral(p.width), p.kind())

	rescue := rescueNone
	for i, code := range codes {
		chars, tones := p.line(i)
		m := matchLine(tones, code, level, rescue)
		rescue = m.rescue

		info := ""
		if i%2 == 1 || (i == 0 && rhyming != 0) {
			info = p.rhymeInfo(chars[len(chars)-1], i == 0)
		}
		fmt.Fprintf(&b, "\n%s\n%s\t%s\n%s\t%s\n", ruleText(m.pattern), string(chars), info, string(m.glyphs), m.note())
	}
	return b.String()
}

// rhymeInfo names the classes of a rhyme word and whether it rhymes with
// the poem. Line 1 may borrow a neighboring class (邻韵).
func (p *poem) rhymeInfo(ch rune, firstLine bool) string {
	classes := p.book.Classes(ch)
	label := p.book.ShiLabel(classes)
	switch {
	case slices.Contains(classes, p.mode):
		return label + " 押韵 "
	case firstLine && p.book.Adjacent(p.mode, ch):
		return label + " 用邻韵 押韵 "
	default:
		return label + " 不押韵 "
	}
}
