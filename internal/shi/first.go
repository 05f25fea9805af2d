package shi

import (
	"slices"

	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// Line codes. 1..4 are five-character lines, 5..8 their seven-character
// counterparts: 1/5 平起 rhymed, 2/6 平起 unrhymed, 3/7 仄起 rhymed, 4/8 仄起
// unrhymed, named after a level-rhymed poem.
const sevenOffset = 4

// rotation gives the code of the next line. first applies from line 1 to
// line 2 when line 1 rhymes, turn everywhere else.
type rotation struct {
	first, turn [9]int
}

var (
	levelRotation = rotation{
		first: [9]int{1: 3, 2: 4, 3: 1, 4: 2, 5: 7, 6: 8, 7: 5, 8: 6},
		turn:  [9]int{1: 2, 2: 3, 3: 4, 4: 1, 5: 6, 6: 7, 7: 8, 8: 5},
	}
	obliqueRotation = rotation{
		first: [9]int{3: 1, 4: 2, 1: 3, 2: 4, 7: 5, 8: 6, 5: 7, 6: 8},
		turn:  [9]int{2: 1, 3: 2, 4: 3, 1: 4, 6: 5, 7: 6, 8: 7, 5: 8},
	}
)

func rotationFor(level bool) rotation {
	if level {
		return levelRotation
	}
	return obliqueRotation
}

// lineCodes expands a first-line code into the codes of every line.
func lineCodes(first, lines int, rhymed, level bool) []int {
	rot := rotationFor(level)
	codes := make([]int, 0, lines)
	code := first
	for i := range lines {
		codes = append(codes, code)
		if i == 0 && rhymed {
			code = rot.first[code]
		} else {
			code = rot.turn[code]
		}
	}
	return codes
}

// comboCodes maps the tones of positions 2, 4 and 5 of a five-character line
// to the line code they indicate. 0 means the combination is ambiguous.
var comboCodes = map[string]int{
	"111": 0, "112": 2, "121": 1, "122": 2,
	"211": 3, "212": 4, "221": 0, "222": 4,
}

// combos lists the tone combinations of positions 2, 4 and 5 of the last
// five characters of a line. An unjudgeable tone stands for both.
func combos(tail []rhyme.Tone) []string {
	out := []string{""}
	for _, i := range []int{1, 3, 4} {
		var opts []byte
		switch tail[i] {
		case rhyme.ToneLevel:
			opts = []byte{'1'}
		case rhyme.ToneOblique:
			opts = []byte{'2'}
		default:
			opts = []byte{'1', '2'}
		}
		next := make([]string, 0, len(out)*len(opts))
		for _, prefix := range out {
			for _, o := range opts {
				next = append(next, prefix+string(o))
			}
		}
		out = next
	}
	return out
}

// inferFirst finds the five-character code of line 1 from the last five
// characters of every line. rhymed tells whether line 1 rhymes; level is the
// polarity of the poem.
//
// Each line narrows the candidate first-line codes to those whose predicted
// code for that line agrees with one of the line's combinations. A line that
// agrees with no candidate leaves the set unchanged. When the last line still
// leaves several candidates, the last line's own code decides.
func inferFirst(tails [][]rhyme.Tone, rhymed, level bool) int {
	var candidates []int
	switch {
	case rhymed && level:
		candidates = []int{1, 3}
	case rhymed:
		candidates = []int{2, 4}
	default:
		candidates = []int{1, 2, 3, 4}
	}

	predicted := make(map[int][]int, len(candidates))
	for _, c := range candidates {
		predicted[c] = lineCodes(c, len(tails), rhymed, level)
	}

	for t, tail := range tails {
		var seen []int
		for _, combo := range combos(tail) {
			if code := comboCodes[combo]; code != 0 {
				seen = append(seen, code)
			}
		}
		var consistent []int
		for _, c := range candidates {
			if slices.Contains(seen, predicted[c][t]) {
				consistent = append(consistent, c)
			}
		}
		if len(consistent) > 0 {
			candidates = consistent
		}
		if len(candidates) == 1 {
			return candidates[0]
		}
	}

	last := len(tails) - 1
	want := lastLineCode(combos(tails[last])[0], level)
	for _, c := range candidates {
		if predicted[c][last] == want {
			return c
		}
	}
	return candidates[0]
}

// lastLineCode reads a line code from a single combination, resolving the
// ambiguous ones by polarity. The last line of a poem rhymes, so the code is
// moved onto a rhymed code of the poem's polarity.
func lastLineCode(combo string, level bool) int {
	code := comboCodes[combo]
	if code == 0 {
		switch {
		case combo == "111" && level:
			code = 1
		case combo == "221" && level:
			code = 3
		case combo == "111":
			code = 2
		default:
			code = 4
		}
	}
	if level && code%2 == 0 {
		code--
	}
	if !level && code%2 == 1 {
		code++
	}
	return code
}

// swapRhymed pairs every code with its counterpart of the other rhyme state.
var swapRhymed = [9]int{1: 2, 2: 1, 3: 4, 4: 3, 5: 6, 6: 5, 7: 8, 8: 7}

// correctFirst revisits line 1 when its last character is a heteronym. The
// first-line rhyme decision then rests on the class overlap with line 2 and
// on the third character from the end.
func correctFirst(code, rhyming int, shared bool, line []rhyme.Tone) (int, int) {
	if line[len(line)-1].Judgeable() || rhyming == 0 {
		return code, rhyming
	}
	if !shared {
		return swapRhymed[code], 0
	}
	third := line[len(line)-3]
	switch {
	case (code == 3 || code == 7) && third == rhyme.ToneLevel,
		(code == 2 || code == 6) && third == rhyme.ToneOblique:
		return swapRhymed[code], 0
	}
	return code, rhyming
}

// firstRhyming reads from the tones of the first two line ends whether
// line 1 rhymes: 1 on a level rhyme, −1 on an oblique rhyme, 0 when not.
func firstRhyming(first, second rhyme.Tone, level bool) int {
	pair := string([]byte{byte(toneDigit(first)), byte(toneDigit(second))})
	switch {
	case pair == "12" || pair == "21":
		return 0
	case first == rhyme.ToneLevel || second == rhyme.ToneLevel:
		if level {
			return 1
		}
		return 0
	case first == rhyme.ToneOblique || second == rhyme.ToneOblique:
		if !level {
			return -1
		}
		return 0
	case level:
		return 1
	default:
		return -1
	}
}

func toneDigit(t rhyme.Tone) rune {
	if t.Judgeable() {
		return rune(t)
	}
	return '0'
}
