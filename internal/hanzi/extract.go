package hanzi

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ClauseMark is the full-width space that template example texts use to
// mark the slot of a hint word. It counts as punctuation for clause
// comparison.
const ClauseMark = '　'

// punctuation kept by ExtractWithPunctuation and recognized by Breaks.
const punctuation = ",.?!:，。？！、：" + string(ClauseMark)

// IsPunctuation reports whether r is one of the clause-breaking marks.
func IsPunctuation(r rune) bool {
	return strings.ContainsRune(punctuation, r)
}

// IsHan reports whether r is a Han character.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// Extract returns the Han characters of text. Parenthesized annotations,
// half-width or full-width, are dropped together with their content.
func Extract(text string) string {
	return extract(text, false)
}

// ExtractWithPunctuation is like Extract but also keeps clause-breaking
// punctuation.
func ExtractWithPunctuation(text string) string {
	return extract(text, true)
}

func extract(text string, keepPunct bool) string {
	// NFC folds CJK compatibility ideographs onto their unified forms.
	text = norm.NFC.String(text)

	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch r {
		case '(', '（':
			depth++
			continue
		case ')', '）':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}
		if IsHan(r) || (keepPunct && IsPunctuation(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Breaks returns the clause-break positions of a punctuated text: for every
// run of punctuation, the index (counted over non-punctuation characters)
// of the character right before it.
func Breaks(text string) []int {
	var out []int
	count := 0
	inRun := false
	for _, r := range text {
		if IsPunctuation(r) {
			if !inRun && count > 0 {
				out = append(out, count-1)
			}
			inRun = true
			continue
		}
		inRun = false
		count++
	}
	return out
}

// TrimAllWhitespace removes all whitespace characters from text
func TrimAllWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}
