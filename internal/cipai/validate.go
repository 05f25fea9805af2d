package cipai

import "fmt"

// Validate reports inconsistencies between a compiled variant and its
// description. An empty result means the variant is consistent.
func (c *Compiled) Validate() []string {
	var issues []string
	if n, ok := DeclaredLength(c.Description); ok && n != c.Length {
		issues = append(issues, fmt.Sprintf("description declares %d characters, pattern has %d", n, c.Length))
	}
	if len(c.Rhymes) == 0 {
		issues = append(issues, "no rhyme positions")
	}
	total := 0
	for _, n := range c.Sections {
		total += n
	}
	if len(c.Sections) > 0 && total != len(c.Rhymes) {
		issues = append(issues, fmt.Sprintf("description declares %d rhymes, rule marks %d", total, len(c.Rhymes)))
	}
	for _, w := range c.unknown {
		issues = append(issues, fmt.Sprintf("unknown hint word %q", w))
	}
	return issues
}
