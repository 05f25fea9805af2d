package rhyme

import (
	"slices"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

// apicalFinal is the buzzed vowel of zi/ci/si/zhi/chi/shi/ri, bucketed apart
// from the front vowel i.
const apicalFinal = "-i"

var xinyunFinals = [][]string{
	1:  {"a", "ia", "ua"},
	2:  {"o", "e", "uo"},
	3:  {"ie", "ue", "ve"},
	4:  {"ai", "uai"},
	5:  {"ei", "uei", "ui"},
	6:  {"ao", "iao"},
	7:  {"ou", "iu", "iou"},
	8:  {"an", "ian", "uan", "van"},
	9:  {"en", "in", "un", "uen", "vn"},
	10: {"ang", "iang", "uang"},
	11: {"ueng", "eng", "ing", "ong", "iong"},
	12: {"i", "er", "v"},
	13: {apicalFinal},
	14: {"u"},
}

var tongyunFinals = [][]string{
	1:  {"a", "ia", "ua"},
	2:  {"o", "uo"},
	3:  {"e", "ie", "ue", "ve"},
	4:  {"i", apicalFinal},
	5:  {"u"},
	6:  {"v"},
	7:  {"ai", "uai"},
	8:  {"ei", "ui", "uei"},
	9:  {"ao", "iao"},
	10: {"ou", "iu", "iou"},
	11: {"an", "ian", "uan", "van"},
	12: {"en", "in", "uen", "un", "vn"},
	13: {"ang", "iang", "uang"},
	14: {"ueng", "eng", "ing"},
	15: {"ong", "iong"},
	16: {"er"},
}

// Modern is a pinyin-derived rhyme book (2 = 中华新韵, 3 = 中华通韵). Every
// reading of a character maps through the finals table to a class, signed
// +n for tones 1 and 2 and −n otherwise.
type Modern struct {
	id     BookID
	finals map[string]int
	names  []rune
}

// NewXinyun returns rhyme book 2.
func NewXinyun() *Modern {
	return newModern(BookXinyun, xinyunFinals, "麻波皆开微豪尤寒文唐庚齐支姑")
}

// NewTongyun returns rhyme book 3.
func NewTongyun() *Modern {
	return newModern(BookTongyun, tongyunFinals, "啊喔鹅衣乌迂哀欸熬欧安恩昂英雍儿")
}

func newModern(id BookID, table [][]string, names string) *Modern {
	finals := make(map[string]int)
	for class, fs := range table {
		for _, f := range fs {
			finals[f] = class
		}
	}
	return &Modern{id: id, finals: finals, names: []rune(names)}
}

func (m *Modern) ID() BookID { return m.id }

func readings(ch rune) []hanzi.Syllable {
	if rs := hanzi.Readings(ch); len(rs) > 0 {
		return rs
	}
	for _, alt := range hanzi.Variants(ch) {
		if rs := hanzi.Readings(alt); len(rs) > 0 {
			return rs
		}
	}
	return nil
}

// Final returns the finals-table key of a reading.
func Final(s hanzi.Syllable) string {
	if s.Final == "i" && s.Initial != "" && strings.ContainsRune("zcsr", rune(s.Initial[0])) {
		return apicalFinal
	}
	return s.Final
}

func (m *Modern) classify(rs []hanzi.Syllable) []int {
	var out []int
	for _, s := range rs {
		class, ok := m.finals[Final(s)]
		if !ok {
			continue
		}
		if !s.Level() {
			class = -class
		}
		out = append(out, class)
	}
	return out
}

func (m *Modern) Classes(ch rune) []int {
	return m.classify(readings(ch))
}

func (m *Modern) CiClasses(ch rune) []int {
	return m.Classes(ch)
}

func (m *Modern) NeighborClasses(rune) []int {
	return nil
}

func (m *Modern) Adjacent(int, rune) bool {
	return false
}

func (m *Modern) IsLevel(class int) bool {
	return class > 0
}

func (m *Modern) Tone(ch rune) Tone {
	rs := readings(ch)
	classes := m.classify(rs)
	if len(classes) == 0 && len(rs) > 0 {
		return ToneReduced
	}
	return toneOf(m, classes)
}

// ClassName returns the name character of a class, ignoring its sign.
func (m *Modern) ClassName(class int) string {
	if class < 0 {
		class = -class
	}
	if class < 1 || class > len(m.names) {
		return ""
	}
	return string(m.names[class-1])
}

func (m *Modern) ShiLabel(classes []int) string {
	var abs []int
	for _, c := range classes {
		if c < 0 {
			c = -c
		}
		if !slices.Contains(abs, c) {
			abs = append(abs, c)
		}
	}
	slices.Sort(abs)
	names := make([]string, 0, len(abs))
	for _, c := range abs {
		names = append(names, m.ClassName(c))
	}
	return strings.Join(names, "韵、") + "韵"
}

// CiLabel writes each class as numeral, name and tone, e.g. 十一庚平, sorted
// and without repeats.
func (m *Modern) CiLabel(classes []int) string {
	var labels []string
	for _, c := range classes {
		tone := "平"
		n := c
		if c < 0 {
			tone = "仄"
			n = -c
		}
		label := hanzi.Numeral(n) + m.ClassName(n) + tone
		if !slices.Contains(labels, label) {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	return strings.Join(labels, "、")
}
