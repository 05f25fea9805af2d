package hanzi

import (
	"fmt"
	"strings"
)

var digits = []rune("零一二三四五六七八九")

// Numeral writes n in Chinese numerals: 1 → 一, 10 → 十, 21 → 二十一,
// 105 → 一百零五. Values outside 0..9999 fall back to Arabic digits.
func Numeral(n int) string {
	if n < 0 || n > 9999 {
		return fmt.Sprint(n)
	}
	if n < 10 {
		return string(digits[n])
	}
	if n < 20 {
		if n == 10 {
			return "十"
		}
		return "十" + string(digits[n-10])
	}

	units := []string{"", "十", "百", "千"}
	var b strings.Builder
	zero := false
	for place := 3; place >= 0; place-- {
		div := pow10(place)
		d := (n / div) % 10
		if d == 0 {
			if b.Len() > 0 {
				zero = true
			}
			continue
		}
		if zero {
			b.WriteRune(digits[0])
			zero = false
		}
		b.WriteRune(digits[d])
		b.WriteString(units[place])
	}
	return b.String()
}

func pow10(p int) int {
	n := 1
	for range p {
		n *= 10
	}
	return n
}

var numeralValues = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '两': 2, '兩': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var numeralUnits = map[rune]int{'十': 10, '百': 100, '千': 1000}

// ParseNumeral reads a Chinese numeral such as 二十七, 十一 or 两. It reports
// false when s contains anything else.
func ParseNumeral(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	total, digit := 0, -1
	for _, r := range s {
		if v, ok := numeralValues[r]; ok {
			digit = v
			continue
		}
		unit, ok := numeralUnits[r]
		if !ok {
			return 0, false
		}
		if digit < 0 {
			digit = 1
		}
		total += digit * unit
		digit = -1
	}
	if digit > 0 {
		total += digit
	}
	return total, true
}
