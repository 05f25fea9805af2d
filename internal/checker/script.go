package checker

import (
	"strings"
	"unicode/utf8"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

// slips of the s2t table: 叶 in rule hints and the 咸 rhyme class
var (
	ruleFixes  = strings.NewReplacer("葉", "叶")
	labelFixes = strings.NewReplacer("鹹", "咸")
)

// textSeparators end the checked text on the second line of a block: a
// full-width space before ci rhyme info, a tab before shi rhyme info.
const textSeparators = string(hanzi.ClauseMark) + "\t"

// ReportToTraditional converts a report to traditional characters. Within
// each block the second line starts with the checked text, which is kept as
// written; only the rhyme info after it is converted.
func ReportToTraditional(report string) (string, error) {
	lines := strings.Split(report, "\n")
	row := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			row = 0
			continue
		}
		row++

		head, tail := "", line
		if row == 2 {
			if pos := strings.LastIndexAny(line, textSeparators); pos >= 0 {
				_, size := utf8.DecodeRuneInString(line[pos:])
				head, tail = line[:pos+size], line[pos+size:]
			}
		}
		converted, err := hanzi.ToTraditional(tail)
		if err != nil {
			return "", err
		}
		converted = labelFixes.Replace(converted)
		if row == 1 {
			converted = ruleFixes.Replace(converted)
		}
		lines[i] = head + converted
	}
	return strings.Join(lines, "\n"), nil
}
