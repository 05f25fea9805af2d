package hanzi

import (
	"slices"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// Syllable is one reading of a character split into initial, final and tone.
// Tone is 1..4, or 0 for the neutral tone.
type Syllable struct {
	Initial string
	Final   string
	Tone    int
}

// Level reports whether the reading carries a level tone (1st or 2nd).
func (s Syllable) Level() bool {
	return s.Tone == 1 || s.Tone == 2
}

var readingArgs = pinyin.NewArgs()

func init() {
	readingArgs.Style = pinyin.Tone3
	readingArgs.Heteronym = true
}

// initials ordered so that two-letter initials are tried first
var initials = []string{
	"zh", "ch", "sh",
	"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "r", "z", "c", "s",
}

// Readings returns every dictionary reading of ch. Characters unknown to the
// pinyin dictionary give no readings.
func Readings(ch rune) []Syllable {
	raw := pinyin.SinglePinyin(ch, readingArgs)
	out := make([]Syllable, 0, len(raw))
	for _, py := range raw {
		if s, ok := ParseSyllable(py); ok {
			out = append(out, s)
		}
	}
	return out
}

// ParseSyllable splits a numbered pinyin syllable such as "zhong1" or "lv4".
// The final is spelled in full: y/w spellings are undone and ü after j/q/x/y
// is written v, so "you3" has final "iou" and "xue2" has final "ve".
func ParseSyllable(py string) (Syllable, bool) {
	py = strings.ToLower(strings.TrimSpace(py))
	py = strings.ReplaceAll(py, "ü", "v")
	py = strings.ReplaceAll(py, "u:", "v")
	if py == "" {
		return Syllable{}, false
	}

	var s Syllable
	if last := py[len(py)-1]; last >= '0' && last <= '9' {
		s.Tone = int(last - '0')
		if s.Tone == 5 {
			s.Tone = 0
		}
		py = py[:len(py)-1]
	}
	if py == "" {
		return Syllable{}, false
	}

	switch {
	case py == "m" || py == "n" || py == "ng" || py == "hm" || py == "hng":
		// syllabic nasals
		s.Final = py
	case strings.HasPrefix(py, "yu"):
		s.Final = "v" + py[2:]
	case strings.HasPrefix(py, "yi"):
		s.Final = py[1:]
	case strings.HasPrefix(py, "y"):
		s.Final = "i" + py[1:]
	case strings.HasPrefix(py, "wu"):
		s.Final = py[1:]
	case strings.HasPrefix(py, "w"):
		s.Final = "u" + py[1:]
	default:
		for _, ini := range initials {
			if strings.HasPrefix(py, ini) && len(py) > len(ini) {
				s.Initial = ini
				s.Final = py[len(ini):]
				break
			}
		}
		if s.Initial == "" {
			s.Final = py
		}
	}

	if strings.HasPrefix(s.Final, "u") && (s.Initial == "j" || s.Initial == "q" || s.Initial == "x") {
		s.Final = "v" + s.Final[1:]
	}
	return s, true
}

// ToPinyinNoTone converts Chinese text to pinyin without tone marks
func ToPinyinNoTone(text string) string {
	if text == "" {
		return ""
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false

	result := pinyin.Pinyin(text, args)
	var parts []string
	for _, item := range result {
		if len(item) > 0 {
			parts = append(parts, item[0])
		}
	}

	return strings.Join(parts, " ")
}

// ToPinyinAbbr converts Chinese text to pinyin abbreviation (first letters)
func ToPinyinAbbr(text string) string {
	if text == "" {
		return ""
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.FirstLetter
	args.Heteronym = false

	result := pinyin.Pinyin(text, args)
	var parts []string
	for _, item := range result {
		if len(item) > 0 {
			parts = append(parts, item[0])
		}
	}

	return strings.Join(parts, "")
}

// maxCombinations bounds the readings PinyinCombinations expands to
const maxCombinations = 64

// PinyinCombinations returns the toneless pinyin of text for every
// combination of its characters' readings, syllables joined by spaces. The
// default reading comes first. Expansion stops at 64 combinations.
func PinyinCombinations(text string) []string {
	if text == "" {
		return nil
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = true

	combos := [][]string{nil}
	for _, item := range pinyin.Pinyin(text, args) {
		var syllables []string
		for _, py := range item {
			if !slices.Contains(syllables, py) {
				syllables = append(syllables, py)
			}
		}
		if len(syllables) == 0 {
			continue
		}

		var next [][]string
		for _, c := range combos {
			for _, py := range syllables {
				if len(next) == maxCombinations {
					break
				}
				next = append(next, append(slices.Clip(c), py))
			}
		}
		combos = next
	}

	out := make([]string, 0, len(combos))
	for _, c := range combos {
		if len(c) > 0 {
			out = append(out, strings.Join(c, " "))
		}
	}
	return out
}
