package processor

import (
	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
)

// Issue is a consistency problem found in one template variant
type Issue struct {
	TemplateID int
	Name       string
	Pu         cipai.Pu
	Variant    int // 1-based
	Message    string
}

// Result summarizes an import
type Result struct {
	Chars     int
	Overrides int
	Templates int
	Variants  int
	Issues    []Issue
}

type templateResult struct {
	row    *database.Cipai
	issues []Issue
}
