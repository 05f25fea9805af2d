// Package helpers parses command-line selectors shared by the rhythm commands.
package helpers

import (
	"strconv"
	"strings"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	apperrors "github.com/palemoky/chinese-poetry-rhythm/internal/errors"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

var bookAliases = map[string]rhyme.BookID{
	"pingshui": rhyme.BookPingshui,
	"平水":       rhyme.BookPingshui,
	"平水韵":      rhyme.BookPingshui,
	"xinyun":   rhyme.BookXinyun,
	"新韵":       rhyme.BookXinyun,
	"中华新韵":     rhyme.BookXinyun,
	"tongyun":  rhyme.BookTongyun,
	"通韵":       rhyme.BookTongyun,
	"中华通韵":     rhyme.BookTongyun,
}

// ParseBook converts a book selector ("1", "xinyun", "通韵") to a BookID.
// An empty selector gives def.
func ParseBook(s string, def int) (rhyme.BookID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return parseBookNumber(def)
	}
	if id, ok := bookAliases[s]; ok {
		return id, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidArgument("unknown rhyme book " + strconv.Quote(s))
	}
	return parseBookNumber(n)
}

func parseBookNumber(n int) (rhyme.BookID, error) {
	id, err := rhyme.ParseBookID(n)
	if err != nil {
		return 0, apperrors.InvalidArgument(err.Error())
	}
	return id, nil
}

// ParsePu converts a collection selector ("1", "qin", "long", "龙谱") to a
// Pu. An empty selector gives def.
func ParsePu(s string, def int) (cipai.Pu, error) {
	n := def
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
	case "qin", "钦", "钦谱":
		n = int(cipai.PuQin)
	case "long", "龙", "龙谱":
		n = int(cipai.PuLong)
	default:
		var err error
		if n, err = strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return 0, apperrors.InvalidArgument("unknown template collection " + strconv.Quote(s))
		}
	}
	pu, err := cipai.ParsePu(n)
	if err != nil {
		return 0, apperrors.InvalidArgument(err.Error())
	}
	return pu, nil
}

// ScriptFor returns the output script for the traditional flag
func ScriptFor(traditional bool) hanzi.Script {
	if traditional {
		return hanzi.ScriptHant
	}
	return hanzi.ScriptHans
}

// Pagination represents pagination parameters
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination creates a new Pagination with validation
// Ensures page >= 1 and pageSize between 1 and maxSize, defaulting to
// page=1, pageSize=20
func NewPagination(page, pageSize, maxSize int) *Pagination {
	if maxSize < 1 {
		maxSize = 100
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return &Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// Offset calculates the database offset for the current page
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
