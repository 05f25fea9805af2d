// Package rhyme classifies characters under the supported rhyme books.
package rhyme

import (
	"fmt"
	"slices"
	"strings"
)

// BookID identifies a rhyme book.
type BookID int

const (
	// BookPingshui is the 106-class 平水韵, with the 词林正韵 grouping for ci.
	BookPingshui BookID = 1
	// BookXinyun is the 14-class 中华新韵.
	BookXinyun BookID = 2
	// BookTongyun is the 16-class 中华通韵.
	BookTongyun BookID = 3
)

// Valid reports whether id names a supported book.
func (id BookID) Valid() bool {
	return id >= BookPingshui && id <= BookTongyun
}

func (id BookID) String() string {
	switch id {
	case BookPingshui:
		return "平水韵"
	case BookXinyun:
		return "中华新韵"
	case BookTongyun:
		return "中华通韵"
	default:
		return fmt.Sprintf("BookID(%d)", int(id))
	}
}

// ParseBookID converts a numeric selector into a BookID.
func ParseBookID(n int) (BookID, error) {
	id := BookID(n)
	if !id.Valid() {
		return 0, fmt.Errorf("unknown rhyme book %d (must be 1, 2 or 3)", n)
	}
	return id, nil
}

// Tone is the single-letter tone code of a character.
type Tone byte

const (
	// ToneHeteronym marks characters whose readings span both tones, and
	// characters the book cannot classify.
	ToneHeteronym Tone = '0'
	ToneLevel     Tone = '1'
	ToneOblique   Tone = '2'
	// ToneReduced marks characters that have readings whose finals are all
	// missing from a modern book's finals table.
	ToneReduced Tone = '3'
)

// Judgeable reports whether t can be checked against a level/oblique slot.
func (t Tone) Judgeable() bool {
	return t == ToneLevel || t == ToneOblique
}

// Book is one rhyme book. Class codes are signed: see the implementations for
// the numbering. Returned slices must not be modified.
type Book interface {
	ID() BookID

	// Classes returns the classes used for shi rhymes and tones. An empty
	// result means the character cannot be classified.
	Classes(ch rune) []int

	// CiClasses returns the classes used to compare ci rhyme words.
	CiClasses(ch rune) []int

	// NeighborClasses returns the looser grouping tried when the first two
	// line ends of a shi share no class. Books without one return nil.
	NeighborClasses(ch rune) []int

	// Adjacent reports whether ch has a level reading in a class
	// neighboring class, which licenses a first-line 邻韵.
	Adjacent(class int, ch rune) bool

	// IsLevel reports whether a class from Classes is a level-tone class.
	IsLevel(class int) bool

	Tone(ch rune) Tone

	// ShiLabel names classes from Classes, e.g. "东韵、送韵".
	ShiLabel(classes []int) string

	// CiLabel names classes from CiClasses, e.g. "一部平".
	CiLabel(classes []int) string
}

// Tones maps every character of s to its tone code.
func Tones(b Book, s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteByte(byte(b.Tone(r)))
	}
	return sb.String()
}

func toneOf(b Book, classes []int) Tone {
	if len(classes) == 0 {
		return ToneHeteronym
	}
	level, oblique := false, false
	for _, c := range classes {
		if b.IsLevel(c) {
			level = true
		} else {
			oblique = true
		}
	}
	switch {
	case level && oblique:
		return ToneHeteronym
	case level:
		return ToneLevel
	default:
		return ToneOblique
	}
}

// Intersect returns the classes of a that also appear in b, in a's order and
// without repeats.
func Intersect(a, b []int) []int {
	var out []int
	for _, c := range a {
		if slices.Contains(b, c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func dedupe(classes []int) []int {
	out := make([]int, 0, len(classes))
	for _, c := range classes {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
