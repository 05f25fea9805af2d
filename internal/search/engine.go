// Package search finds ci templates in the SQLite store by name, pinyin and
// character count.
package search

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/helpers"
)

// Engine handles all search operations
type Engine struct {
	db *database.DB
}

// NewEngine creates a new search engine
func NewEngine(db *database.DB) *Engine {
	return &Engine{db: db}
}

// SearchType defines the type of search
type SearchType string

const (
	SearchTypeAll    SearchType = "all"
	SearchTypeName   SearchType = "name"
	SearchTypePinyin SearchType = "pinyin"
)

// ParseSearchType converts a string to a SearchType, defaulting to all
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchTypeAll:
		return SearchTypeAll, nil
	case SearchTypeName:
		return SearchTypeName, nil
	case SearchTypePinyin:
		return SearchTypePinyin, nil
	default:
		return "", fmt.Errorf("unknown search type %q (must be all, name or pinyin)", s)
	}
}

// SearchParams contains search parameters
type SearchParams struct {
	Query      string
	SearchType SearchType
	// Length keeps templates having a variant of this many characters in
	// collection Pu. Zero disables the filter.
	Length   int
	Pu       int
	Page     int
	PageSize int

	// MaxPageSize caps PageSize; zero means 100.
	MaxPageSize int
}

// SearchResult contains search results
type SearchResult struct {
	Cipai      []database.Cipai
	TotalCount int
	HasMore    bool
}

// Search performs a search based on the given parameters
func (e *Engine) Search(params SearchParams) (*SearchResult, error) {
	page := helpers.NewPagination(params.Page, params.PageSize, params.MaxPageSize)
	if params.Pu == 0 {
		params.Pu = 1
	}

	offset := page.Offset()
	query := strings.TrimSpace(params.Query)

	db := e.baseQuery()
	if query != "" {
		switch params.SearchType {
		case SearchTypePinyin:
			db = byPinyin(db, query)
		case SearchTypeName:
			db = byName(db, query)
		default:
			if isPinyinQuery(query) {
				db = byPinyin(db, query)
			} else {
				db = byName(db, query)
			}
		}
	}
	if params.Length > 0 {
		db = db.Where("id IN (?)", e.db.Model(&database.CipaiVariant{}).
			Select("cipai_id").
			Where("length = ? AND pu = ?", params.Length, params.Pu))
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}
	var cipai []database.Cipai
	if err := db.Order("id").Limit(page.PageSize).Offset(offset).Find(&cipai).Error; err != nil {
		return nil, fmt.Errorf("failed to search templates: %w", err)
	}

	return &SearchResult{
		Cipai:      cipai,
		TotalCount: int(count),
		HasMore:    offset+len(cipai) < int(count),
	}, nil
}

// baseQuery returns a GORM query with preloaded variants
func (e *Engine) baseQuery() *gorm.DB {
	return e.db.Model(&database.Cipai{}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("pu, ordinal")
		})
}

// byName matches any simplified or traditional name. Traditional queries are
// also tried in simplified form.
func byName(db *gorm.DB, query string) *gorm.DB {
	pattern := "%" + query + "%"
	cond := "names LIKE ? OR names_trad LIKE ?"
	args := []any{pattern, pattern}
	if simplified, err := hanzi.ToSimplified(query); err == nil && simplified != query {
		cond += " OR names LIKE ?"
		args = append(args, "%"+simplified+"%")
	}
	return db.Where(cond, args...)
}

// byPinyin matches the pinyin of any reading of the primary name, spaces
// ignored, or its abbreviation
func byPinyin(db *gorm.DB, query string) *gorm.DB {
	pattern := "%" + compactPinyin(query) + "%"
	return db.Where("REPLACE(name_pinyin, ' ', '') LIKE ? OR name_pinyin_abbr LIKE ? OR name_readings LIKE ?",
		pattern, pattern, pattern)
}

// compactPinyin lowercases a pinyin query and drops whitespace and tone
// digits, so "Chang2 xiang1" reads as "changxiang".
func compactPinyin(query string) string {
	toneless := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, query)
	return strings.ToLower(hanzi.TrimAllWhitespace(toneless))
}

// isPinyinQuery checks if a query string is pinyin
func isPinyinQuery(s string) bool {
	if s == "" {
		return false
	}

	letterCount := 0
	totalCount := 0

	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		totalCount++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letterCount++
		}
	}

	// If more than 50% are ASCII letters, consider it pinyin
	return totalCount > 0 && float64(letterCount)/float64(totalCount) > 0.5
}
