package report

import (
	"regexp"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

var groupRe = regexp.MustCompile(`第([一二三四五六七八九十百]+)组韵`)

// Score is the tally of a rendered report
type Score struct {
	// Correct counts 〇 and 中 on tone lines, minus one per unrhymed line
	Correct int
	Rhymed  int
	Groups  int
}

// Tally scores a rendered report line by line
func Tally(text string) Score {
	s := Score{Groups: 1}
	if matches := groupRe.FindAllStringSubmatch(text, -1); matches != nil {
		s.Groups = 0
		for _, m := range matches {
			if n, ok := hanzi.ParseNumeral(m[1]); ok && n > s.Groups {
				s.Groups = n
			}
		}
	}

	for line := range strings.SplitSeq(text, "\n") {
		if strings.ContainsRune(line, Correct) {
			s.Correct += strings.Count(line, string(Correct)) + strings.Count(line, string(Unsure))
		}
		// a failed rhyme is never a rhymed line
		switch {
		case strings.Contains(line, "不押韵"):
			s.Correct--
		case strings.Contains(line, "押韵"):
			s.Rhymed++
		}
	}
	return s
}

// Better reports whether s beats o: more correct positions first, then more
// rhymed lines, then fewer rhyme groups.
func (s Score) Better(o Score) bool {
	if s.Correct != o.Correct {
		return s.Correct > o.Correct
	}
	if s.Rhymed != o.Rhymed {
		return s.Rhymed > o.Rhymed
	}
	return s.Groups < o.Groups
}

// Pick returns the better of two rendered reports. An empty report always
// loses and a full tie keeps a.
func Pick(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if Tally(b).Better(Tally(a)) {
		return b
	}
	return a
}

// Fold picks the best of several reports, earlier ones winning ties
func Fold(reports ...string) string {
	best := ""
	for _, r := range reports {
		best = Pick(best, r)
	}
	return best
}
