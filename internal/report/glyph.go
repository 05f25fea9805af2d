// Package report holds the glyphs shared by the shi and ci reports and the
// arbiter that picks the better of two rendered reports.
package report

import "github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"

// Glyphs of a tone line
const (
	Correct = '〇'
	Wrong   = '错'
	Unsure  = '中'

	// RhymeHit and RhymeMiss replace the last glyph of a ci clause
	RhymeHit  = '□'
	RhymeMiss = '■'
)

// Rule characters of a tone pattern
const (
	RuleLevel   = '平'
	RuleOblique = '仄'
	RuleAny     = '中'
)

// Judge returns the glyph for a character of the given tone at a pattern
// position requiring rule.
func Judge(rule rune, tone rhyme.Tone) rune {
	if !tone.Judgeable() {
		return Unsure
	}
	switch rule {
	case RuleLevel:
		if tone != rhyme.ToneLevel {
			return Wrong
		}
	case RuleOblique:
		if tone != rhyme.ToneOblique {
			return Wrong
		}
	}
	return Correct
}
