package shi

import (
	"slices"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/report"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// Admissible tone patterns per line code: 0 any, 1 level, 2 oblique. Rescue
// forms come last so that a regular form wins a tie.
var levelPatterns = [9][]string{
	1: {"11221", "21121", "11121"},
	2: {"01122", "11212"},
	3: {"02211"},
	4: {"02012", "02022"},
	5: {"0211221", "0221121", "0211121"},
	6: {"0201122", "0211212"},
	7: {"0102211"},
	8: {"0102012", "0102022"},
}

// An oblique-rhymed poem has no 孤平 concern on code 1 and cannot rescue a
// 中仄中仄仄 line in the next line.
var obliquePatterns = func() [9][]string {
	p := levelPatterns
	p[1] = []string{"11221", "21121", "11121", "21221"}
	p[4] = []string{"02012"}
	p[8] = []string{"0102012"}
	return p
}()

// Rescue states carried from one line to the next
const (
	rescueNone = iota
	rescueSelf
	rescuePair
)

var (
	pairRescue = []string{"02022", "0102022"}
	selfRescue = []string{"11212", "0211212"}
)

const (
	pairRescueNote = "\n本句可能为“中仄中仄仄”拗句。四拗对句须三救。"
	selfRescueNote = "\n“平平仄平仄”拗句，为本句自救。"
)

var ruleRunes = [...]rune{'0': report.RuleAny, '1': report.RuleLevel, '2': report.RuleOblique}

// ruleText spells a pattern with 中, 平 and 仄.
func ruleText(pattern string) string {
	var b strings.Builder
	for i := range len(pattern) {
		b.WriteRune(ruleRunes[pattern[i]])
	}
	return b.String()
}

// lineMatch is the best pattern for one line
type lineMatch struct {
	pattern string
	glyphs  []rune
	rescue  int
}

// note is the rescue remark printed after the glyph line
func (m lineMatch) note() string {
	switch m.rescue {
	case rescuePair:
		return pairRescueNote
	case rescueSelf:
		return selfRescueNote
	}
	return ""
}

// matchLine finds the admissible pattern of code with the fewest wrong
// positions, earlier patterns winning ties. A line following a 中仄中仄仄
// line may only take the last two patterns, which rescue it.
func matchLine(tones []rhyme.Tone, code int, level bool, prevRescue int) lineMatch {
	patterns := obliquePatterns[code]
	if level {
		patterns = levelPatterns[code]
	}
	if prevRescue == rescuePair && len(patterns) > 2 {
		patterns = patterns[len(patterns)-2:]
	}

	var best lineMatch
	bestWrong := -1
	for _, p := range patterns {
		glyphs := make([]rune, len(tones))
		wrong := 0
		for i, t := range tones {
			glyphs[i] = report.Judge(ruleRunes[p[i]], t)
			if glyphs[i] == report.Wrong {
				wrong++
			}
		}
		if bestWrong < 0 || wrong < bestWrong {
			best = lineMatch{pattern: p, glyphs: glyphs}
			bestWrong = wrong
		}
	}

	switch {
	case slices.Contains(pairRescue, best.pattern):
		best.rescue = rescuePair
	case slices.Contains(selfRescue, best.pattern):
		best.rescue = rescueSelf
	}
	return best
}
