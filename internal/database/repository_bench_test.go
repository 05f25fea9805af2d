package database

import (
	"fmt"
	"testing"

	"gorm.io/datatypes"
)

// BenchmarkListCipai benchmarks loading every template with its variants
func BenchmarkListCipai(b *testing.B) {
	repo := NewRepository(setupTestDB(b))

	cipai := make([]*Cipai, 100)
	for i := range cipai {
		cipai[i] = &Cipai{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("词牌%d", i+1),
			Names: datatypes.JSON(fmt.Sprintf(`["词牌%d"]`, i+1)),
			Variants: []CipaiVariant{
				{Pu: 1, Ordinal: 1, Length: 27, Example: "甲", Rule: "平"},
				{Pu: 1, Ordinal: 2, Length: 54, Example: "乙", Rule: "仄"},
			},
		}
	}
	if err := repo.BatchInsertCipaiWithTransaction(cipai, 50, 100, nil); err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		_, _ = repo.ListCipai()
	}
}

// BenchmarkBatchInsertChars benchmarks 平水韵 row insertion
func BenchmarkBatchInsertChars(b *testing.B) {
	repo := NewRepository(setupTestDB(b))

	chars := make([]*PingshuiChar, 1000)
	for i := range chars {
		chars[i] = &PingshuiChar{
			Char:    string(rune(0x4e00 + i)),
			Classes: datatypes.JSON(`[1]`),
		}
	}

	for b.Loop() {
		_ = repo.BatchInsertChars(chars, 500)
	}
}
