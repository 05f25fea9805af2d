package cipai

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

var (
	sectionRhymeRe = regexp.MustCompile(`([一二两三四五六七八九十]+)[平仄叶叠换上去入声部]{0,3}韵`)
	sectionTotalRe = regexp.MustCompile(`(?:^|[^第])([二三四五六七八九十]+)段`)
	sectionNthRe   = regexp.MustCompile(`第([一二三四五六七八九十]+)段`)
	charCountRe    = regexp.MustCompile(`([0-9]+|[一二两三四五六七八九十百]+)字`)
)

// ParseSections reads per-section rhyme counts from a variant description
// such as "双调三十六字，前段三句三平韵，后段四句两仄韵两平韵".
func ParseSections(desc string) []int {
	total := sectionTotal(desc)
	var sections []int
	add := func(s, n int) {
		for len(sections) <= s {
			sections = append(sections, 0)
		}
		sections[s] += n
	}

	target := []int{0}
	for _, clause := range strings.FieldsFunc(desc, isDescriptionBreak) {
		if t := directive(clause, total, len(sections)); t != nil {
			target = t
		}
		for _, m := range sectionRhymeRe.FindAllStringSubmatch(clause, -1) {
			n, ok := hanzi.ParseNumeral(m[1])
			if !ok {
				continue
			}
			for _, s := range target {
				add(s, n)
			}
		}
	}
	return sections
}

func isDescriptionBreak(r rune) bool {
	return strings.ContainsRune("，。；,;、：", r)
}

func sectionTotal(desc string) int {
	switch {
	case strings.Contains(desc, "四叠"):
		return 4
	case strings.Contains(desc, "三叠"):
		return 3
	}
	if m := sectionTotalRe.FindStringSubmatch(desc); m != nil {
		if n, ok := hanzi.ParseNumeral(m[1]); ok && n > 0 {
			return n
		}
	}
	if strings.Contains(desc, "双调") {
		return 2
	}
	return 1
}

// directive returns the sections a description clause speaks about, or nil
// when the clause keeps the previous target.
func directive(clause string, total, seen int) []int {
	switch {
	case strings.Contains(clause, "前后段"), strings.Contains(clause, "前两段"):
		return []int{0, 1}
	case strings.Contains(clause, "后两段"):
		return []int{seen, seen + 1}
	case strings.Contains(clause, "每段"):
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if m := sectionNthRe.FindStringSubmatch(clause); m != nil {
		if n, ok := hanzi.ParseNumeral(m[1]); ok && n > 0 {
			return []int{n - 1}
		}
	}
	switch {
	case strings.Contains(clause, "前段"), strings.Contains(clause, "上片"):
		return []int{0}
	case strings.Contains(clause, "中段"):
		return []int{1}
	case strings.Contains(clause, "后段"), strings.Contains(clause, "下片"):
		return []int{max(seen, 1)}
	}
	return nil
}

// DeclaredLength returns the character count stated in the description.
func DeclaredLength(desc string) (int, bool) {
	m := charCountRe.FindStringSubmatch(desc)
	if m == nil {
		return 0, false
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		return n, true
	}
	return hanzi.ParseNumeral(m[1])
}
