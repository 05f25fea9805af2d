package cipai

import (
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
)

// SampleText returns the example ci punctuated for reading: inner slots
// become commas and every rhymed clause ends with a full stop.
func (c *Compiled) SampleText() string {
	var b strings.Builder
	for _, cl := range c.Clauses {
		if cl.Example == "" {
			continue
		}
		text := strings.ReplaceAll(cl.Example, string(hanzi.ClauseMark), "，")
		for strings.Contains(text, "，，") {
			text = strings.ReplaceAll(text, "，，", "，")
		}
		b.WriteString(text)
		b.WriteString("。")
	}
	return b.String()
}
