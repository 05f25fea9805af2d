package database

import (
	"time"

	"gorm.io/datatypes"
)

// SchemaMeta holds key/value metadata about the database itself
type SchemaMeta struct {
	Name  string `gorm:"primaryKey;size:32" json:"name"`
	Value string `gorm:"not null"           json:"value"`
}

// TableName specifies the table name for SchemaMeta
func (SchemaMeta) TableName() string {
	return "schema_meta"
}

// PingshuiChar maps one character to its 平水韵 classes
type PingshuiChar struct {
	Char    string         `gorm:"primaryKey;size:8"  json:"char"`
	Classes datatypes.JSON `gorm:"type:json;not null" json:"classes"` // JSON array of class numbers
}

// TableName specifies the table name for PingshuiChar
func (PingshuiChar) TableName() string {
	return "pingshui_chars"
}

// CilinOverride pins the 词林正韵 部 of a character whose 平水 class is split
type CilinOverride struct {
	Char    string         `gorm:"primaryKey;size:8"  json:"char"`
	Classes datatypes.JSON `gorm:"type:json;not null" json:"classes"`
}

// TableName specifies the table name for CilinOverride
func (CilinOverride) TableName() string {
	return "cilin_overrides"
}

// Cipai is a ci template (词牌)
type Cipai struct {
	ID             int64          `gorm:"primaryKey"                                     json:"id"`
	Name           string         `gorm:"not null;index"                                 json:"name"`
	Names          datatypes.JSON `gorm:"type:json;not null"                             json:"names"`
	NamesTrad      datatypes.JSON `gorm:"type:json"                                      json:"names_trad"`
	NamePinyin     string         `gorm:"index"                                          json:"name_pinyin"`
	NamePinyinAbbr string         `gorm:"index"                                          json:"name_pinyin_abbr"`
	// NameReadings lists the compact pinyin and abbreviation of every
	// reading of the primary name, space separated
	NameReadings   string         `                                                      json:"name_readings"`
	Variants       []CipaiVariant `gorm:"foreignKey:CipaiID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"                                 json:"created_at"`
}

// TableName specifies the table name for Cipai
func (Cipai) TableName() string {
	return "cipai"
}

// CipaiVariant is one variant (格) of a template in one collection
type CipaiVariant struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"                  json:"id"`
	CipaiID         int64  `gorm:"not null;uniqueIndex:idx_variant,priority:1" json:"cipai_id"`
	Pu              int    `gorm:"not null;uniqueIndex:idx_variant,priority:2" json:"pu"`
	Ordinal         int    `gorm:"not null;uniqueIndex:idx_variant,priority:3" json:"ordinal"`
	Length          int    `gorm:"not null;index"                            json:"length"`
	Example         string `gorm:"not null"                                  json:"example"`
	Rule            string `gorm:"not null"                                  json:"rule"`
	Description     string `                                                 json:"description"`
	Padding         int    `gorm:"not null;default:0"                        json:"padding,omitempty"`
	TrailingOblique bool   `gorm:"not null;default:false"                    json:"trailing_oblique,omitempty"`
}

// TableName specifies the table name for CipaiVariant
func (CipaiVariant) TableName() string {
	return "cipai_variants"
}

// LengthCount is the number of variants of one character count
type LengthCount struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

// Statistics holds overall statistics
type Statistics struct {
	TotalChars     int64         `json:"total_chars"`
	TotalOverrides int64         `json:"total_overrides"`
	TotalCipai     int64         `json:"total_cipai"`
	QinVariants    int64         `json:"qin_variants"`
	LongVariants   int64         `json:"long_variants"`
	CommonLengths  []LengthCount `json:"common_lengths"`
}
