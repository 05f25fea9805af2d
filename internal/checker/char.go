package checker

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

// Character lookup messages.
const (
	MsgEmptyChar   = "请输入需要查询的汉字！"
	MsgNotSingle   = "请输入单个汉字！"
	MsgOutOfBlocks = "非汉字或超出区段（基本区及拓展A、B区）"
)

// charBlocks are the ranges a character lookup accepts: the URO, extension
// A, 〇 and extension B.
var charBlocks = [][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x3007, 0x3007},
	{0x20000, 0x2A6DF},
}

// SingleChar validates a character lookup input.
func SingleChar(input string) (rune, error) {
	input = strings.TrimSpace(input)
	switch utf8.RuneCountInString(input) {
	case 0:
		return 0, apperrors.InvalidArgument(MsgEmptyChar)
	case 1:
	default:
		return 0, apperrors.InvalidArgument(MsgNotSingle)
	}
	ch, _ := utf8.DecodeRuneInString(input)
	for _, b := range charBlocks {
		if ch >= b[0] && ch <= b[1] {
			return ch, nil
		}
	}
	return 0, apperrors.InvalidArgument(MsgOutOfBlocks)
}

var (
	xinyun  = rhyme.NewXinyun()
	tongyun = rhyme.NewTongyun()
)

// DescribeAll writes the classes of ch under 平水韵, 词林正韵, 中华新韵 and
// 中华通韵, one book per line. Books that cannot classify ch show 无.
func DescribeAll(ps *rhyme.Pingshui, ch rune) string {
	var b strings.Builder
	b.WriteRune(ch)
	b.WriteByte('\n')

	classes := ps.Classes(ch)
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, rhyme.ClassTone(c)+hanzi.Numeral(sectionIndex(c))+rhyme.ClassName(c))
	}
	writeLine(&b, "平水韵", names)
	writeLine(&b, "词林正韵", labels(ps.CiLabel(ps.CiClasses(ch))))
	writeLine(&b, "中华新韵", labels(xinyun.CiLabel(xinyun.Classes(ch))))
	writeLine(&b, "中华通韵", labels(tongyun.CiLabel(tongyun.Classes(ch))))
	return b.String()
}

// sectionIndex numbers a 平水韵 class within its tone section: 上平一东,
// 下平一先, 上声一董.
func sectionIndex(class int) int {
	for _, start := range []int{90, 60, 31, 16, 1} {
		if class >= start {
			return class - start + 1
		}
	}
	return class
}

func labels(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "、")
}

func writeLine(b *strings.Builder, book string, parts []string) {
	b.WriteString(book)
	b.WriteString("：")
	if len(parts) == 0 {
		b.WriteString("无")
	} else {
		b.WriteString(strings.Join(parts, "、"))
	}
	b.WriteByte('\n')
}
