package ci

import (
	"fmt"
	"slices"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/report"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

const unknownClass = "不知韵部"

// vote decides for each rhyme position whether it rhymes with its group.
// Borrowed positions vote with their classes sign-flipped; each group
// rhymes on its most frequent class, the first seen winning ties.
func vote(cv *cipai.Compiled, classes [][]int) []bool {
	flipped := make([][]int, len(classes))
	for i, cs := range classes {
		if !cv.Rhymes[i].Borrowed {
			flipped[i] = cs
			continue
		}
		flipped[i] = make([]int, len(cs))
		for j, c := range cs {
			flipped[i][j] = -c
		}
	}

	modes := map[int]int{}
	for g := 1; g <= cv.Groups(); g++ {
		counts := map[int]int{}
		var order []int
		for i, r := range cv.Rhymes {
			if r.Group != g {
				continue
			}
			for _, c := range flipped[i] {
				if counts[c] == 0 {
					order = append(order, c)
				}
				counts[c]++
			}
		}
		if len(order) == 0 {
			continue
		}
		best := order[0]
		for _, c := range order[1:] {
			if counts[c] > counts[best] {
				best = c
			}
		}
		modes[g] = best
	}

	out := make([]bool, len(classes))
	for i, r := range cv.Rhymes {
		mode, ok := modes[r.Group]
		out[i] = ok && slices.Contains(flipped[i], mode)
	}
	return out
}

// renderVariant writes the report of content read against one variant.
func renderVariant(book rhyme.Book, c candidate, content []rune) string {
	cv := c.compiled
	pattern := []rune(cv.Pattern)

	glyphs := make([]rune, len(content))
	for i, ch := range content {
		glyphs[i] = report.Judge(pattern[i], book.Tone(ch))
	}

	classes := make([][]int, len(cv.Rhymes))
	for i, r := range cv.Rhymes {
		classes[i] = book.CiClasses(content[r.Pos])
	}
	rhymes := vote(cv, classes)

	var b strings.Builder
	fmt.Fprintf(&b, "你的格式为 格%s\n\n", hanzi.Numeral(c.index))
	for _, cl := range cv.Clauses {
		text := cv.Fill(cl, content)
		tones := []rune(cv.Fill(cl, glyphs))

		b.WriteString(cl.Rule)
		b.WriteByte('\n')
		b.WriteString(text)
		if cl.Rhyme >= 0 {
			r := cv.Rhymes[cl.Rhyme]
			b.WriteRune(hanzi.ClauseMark)
			if len(classes[cl.Rhyme]) == 0 {
				b.WriteString(unknownClass)
			} else {
				verdict := "押韵"
				if !rhymes[cl.Rhyme] {
					verdict = "不押韵"
				}
				fmt.Fprintf(&b, "%s 第%s组韵 %s", book.CiLabel(classes[cl.Rhyme]), hanzi.Numeral(r.Group), verdict)
				markRhyme(tones, rhymes[cl.Rhyme])
			}
		}
		b.WriteByte('\n')
		b.WriteString(string(tones))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// markRhyme swaps the glyph of the rhyme character for a block: hollow when
// it rhymes with a correct tone, solid otherwise.
func markRhyme(tones []rune, rhymes bool) {
	last := len(tones) - 1
	if last < 0 {
		return
	}
	if rhymes && tones[last] != report.Wrong {
		tones[last] = report.RhymeHit
	} else {
		tones[last] = report.RhymeMiss
	}
}
