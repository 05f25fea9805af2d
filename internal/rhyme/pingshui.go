package rhyme

import (
	"slices"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

// PingshuiClasses is the number of 平水韵 classes. Classes 1..30 are level
// (上平 1..15, 下平 16..30), 31..59 上声, 60..89 去声 and 90..106 入声.
const PingshuiClasses = 106

const lastLevelClass = 30

var pingshuiNames = []rune("东冬江支微鱼虞齐佳灰真文元寒删" +
	"先萧肴豪歌麻阳庚青蒸尤侵覃盐咸" +
	"董肿讲纸尾语麌荠蟹贿轸吻阮旱潸铣筱巧皓哿马养梗迥有寝感琰豏" +
	"送宋绛寘未御遇霁泰卦队震问愿翰谏霰啸效号个祃漾敬径宥沁勘艳陷" +
	"屋沃觉质物月曷黠屑药陌锡职缉合叶洽")

// cilinOf maps a 平水韵 class to its 词林正韵 部, signed: level +n, 上去 −n,
// 入声 +15..+19. Classes split between two 部 list both.
var cilinOf = [PingshuiClasses + 1][]int{
	1: {1}, 2: {1}, 3: {2}, 4: {3}, 5: {3}, 6: {4}, 7: {4}, 8: {3}, 9: {5, 10}, 10: {3, 5},
	11: {6}, 12: {6}, 13: {6, 7}, 14: {7}, 15: {7},
	16: {7}, 17: {8}, 18: {8}, 19: {8}, 20: {9}, 21: {10}, 22: {2}, 23: {11}, 24: {11}, 25: {11},
	26: {12}, 27: {13}, 28: {14}, 29: {14}, 30: {14},
	31: {-1}, 32: {-1}, 33: {-2}, 34: {-3}, 35: {-3}, 36: {-4}, 37: {-4}, 38: {-3}, 39: {-5, -10}, 40: {-3, -5},
	41: {-6}, 42: {-6}, 43: {-6, -7}, 44: {-7}, 45: {-7}, 46: {-7}, 47: {-8}, 48: {-8}, 49: {-8}, 50: {-9},
	51: {-10}, 52: {-2}, 53: {-11}, 54: {-11}, 55: {-12}, 56: {-13}, 57: {-14}, 58: {-14}, 59: {-14},
	60: {-1}, 61: {-1}, 62: {-2}, 63: {-3}, 64: {-3}, 65: {-4}, 66: {-4}, 67: {-3}, 68: {-3, -5}, 69: {-5, -10},
	70: {-3, -5}, 71: {-6}, 72: {-6}, 73: {-6, -7}, 74: {-7}, 75: {-7}, 76: {-7}, 77: {-8}, 78: {-8}, 79: {-8},
	80: {-9}, 81: {-10}, 82: {-2}, 83: {-11}, 84: {-11}, 85: {-12}, 86: {-13}, 87: {-14}, 88: {-14}, 89: {-14},
	90: {15}, 91: {15}, 92: {16}, 93: {17}, 94: {18}, 95: {18}, 96: {18}, 97: {18}, 98: {18}, 99: {16},
	100: {17}, 101: {17}, 102: {17}, 103: {17}, 104: {19}, 105: {18}, 106: {19},
}

// Pingshui is rhyme book 1. Shi use the 106 平水韵 classes; ci rhymes and the
// first-line neighbor tolerance use the 19 词林正韵 部.
type Pingshui struct {
	table map[rune][]int
	cilin map[rune][]int
}

// NewPingshui builds book 1 from a character → class table and optional
// per-character 词林 overrides for characters of split classes.
func NewPingshui(table, cilinOverrides map[rune][]int) *Pingshui {
	if cilinOverrides == nil {
		cilinOverrides = map[rune][]int{}
	}
	return &Pingshui{table: table, cilin: cilinOverrides}
}

func (p *Pingshui) ID() BookID { return BookPingshui }

// lookup tries ch, then its simplified and traditional forms.
func lookup(m map[rune][]int, ch rune) ([]int, bool) {
	if v, ok := m[ch]; ok {
		return v, true
	}
	for _, alt := range hanzi.Variants(ch) {
		if v, ok := m[alt]; ok {
			return v, true
		}
	}
	return nil, false
}

func (p *Pingshui) Classes(ch rune) []int {
	classes, _ := lookup(p.table, ch)
	return classes
}

func (p *Pingshui) CiClasses(ch rune) []int {
	if override, ok := lookup(p.cilin, ch); ok {
		return override
	}
	return CilinOf(p.Classes(ch))
}

func (p *Pingshui) NeighborClasses(ch rune) []int {
	return p.CiClasses(ch)
}

func (p *Pingshui) Adjacent(class int, ch rune) bool {
	if !p.IsLevel(class) {
		return false
	}
	var level []int
	for _, c := range p.Classes(ch) {
		if p.IsLevel(c) {
			level = append(level, c)
		}
	}
	return len(Intersect(CilinOf([]int{class}), CilinOf(level))) > 0
}

func (p *Pingshui) IsLevel(class int) bool {
	return class >= 1 && class <= lastLevelClass
}

func (p *Pingshui) Tone(ch rune) Tone {
	return toneOf(p, p.Classes(ch))
}

func (p *Pingshui) ShiLabel(classes []int) string {
	sorted := dedupe(classes)
	slices.Sort(sorted)
	names := make([]string, 0, len(sorted))
	for _, c := range sorted {
		names = append(names, ClassName(c))
	}
	return strings.Join(names, "韵、") + "韵"
}

func (p *Pingshui) CiLabel(classes []int) string {
	labels := make([]string, 0, len(classes))
	for _, c := range dedupe(classes) {
		labels = append(labels, CilinLabel(c))
	}
	return strings.Join(labels, "、")
}

// CilinOf maps 平水韵 classes to their 词林 部, keeping first-seen order.
func CilinOf(classes []int) []int {
	var out []int
	for _, c := range classes {
		if c < 1 || c > PingshuiClasses {
			continue
		}
		for _, b := range cilinOf[c] {
			if !slices.Contains(out, b) {
				out = append(out, b)
			}
		}
	}
	return out
}

// ClassName returns the one-character name of a 平水韵 class, e.g. 东 for 1.
func ClassName(class int) string {
	if class < 1 || class > len(pingshuiNames) {
		return ""
	}
	return string(pingshuiNames[class-1])
}

// ClassTone names the tone section of a 平水韵 class.
func ClassTone(class int) string {
	switch {
	case class >= 1 && class <= 15:
		return "上平"
	case class >= 16 && class <= 30:
		return "下平"
	case class >= 31 && class <= 59:
		return "上声"
	case class >= 60 && class <= 89:
		return "去声"
	case class >= 90 && class <= PingshuiClasses:
		return "入声"
	default:
		return ""
	}
}

// CilinLabel names a signed 词林 部: 一部平, 三部仄, 十五部入声.
func CilinLabel(code int) string {
	switch {
	case code < 0:
		return hanzi.Numeral(-code) + "部仄"
	case code > 14:
		return hanzi.Numeral(code) + "部入声"
	default:
		return hanzi.Numeral(code) + "部平"
	}
}
