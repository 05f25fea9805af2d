package cipai

import "strings"

type lineage struct {
	tone  rune
	count int
}

// classify assigns rhyme groups. Each tone keeps its own lineage counter:
// 换 starts a new group, 叶 joins the active group, and once both tones have
// rhymed, a tone rhyming again in a later section starts a new group.
func (c *Compiled) classify(pattern []rune) {
	counter := map[rune]int{}
	started := map[rune]int{}
	seen := map[rune]bool{}
	var active rune
	lastSection, restart := 0, -1

	keys := make([]lineage, len(c.Rhymes))
	for i := range c.Rhymes {
		r := &c.Rhymes[i]
		declared := declaredTone(r.Word)
		ruleTone := pattern[r.Pos]
		if ruleTone == '中' {
			ruleTone = 0
		}

		var tone rune
		switch {
		case strings.Contains(r.Word, "换"):
			tone = firstTone(declared, active, ruleTone)
			counter[tone]++
			started[tone] = r.Section
			active = tone
			keys[i] = lineage{tone, counter[tone]}
		case strings.Contains(r.Word, "叶") && active != 0:
			tone = firstTone(declared, ruleTone, active)
			keys[i] = lineage{active, counter[active]}
			r.Borrowed = tone != active
		default:
			tone = firstTone(declared, ruleTone, active)
			if len(seen) >= 2 && r.Section != lastSection {
				restart = r.Section
				clear(seen)
			}
			switch {
			case counter[tone] == 0:
				counter[tone] = 1
				started[tone] = r.Section
			case restart == r.Section && started[tone] != r.Section:
				counter[tone]++
				started[tone] = r.Section
			}
			active = tone
			keys[i] = lineage{tone, counter[tone]}
		}
		seen[tone] = true
		lastSection = r.Section
	}

	numbers := map[lineage]int{}
	for i, k := range keys {
		n, ok := numbers[k]
		if !ok {
			n = len(numbers) + 1
			numbers[k] = n
		}
		c.Rhymes[i].Group = n
	}
}

func declaredTone(word string) rune {
	switch {
	case strings.Contains(word, "平"):
		return '平'
	case strings.ContainsAny(word, "仄上去入"):
		return '仄'
	}
	return 0
}

func firstTone(candidates ...rune) rune {
	for _, t := range candidates {
		if t != 0 {
			return t
		}
	}
	return '平'
}
