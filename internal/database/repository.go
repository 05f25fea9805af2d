package database

import (
	"github.com/vbauerster/mpb/v8"
	"gorm.io/gorm"
)

// RepositoryInterface defines the interface for repository operations
type RepositoryInterface interface {
	BatchInsertChars(chars []*PingshuiChar, batchSize int) error
	BatchInsertOverrides(overrides []*CilinOverride, batchSize int) error
	BatchInsertCipaiWithTransaction(cipai []*Cipai, transactionSize, batchSize int, progress *mpb.Progress) error
	ListChars() ([]PingshuiChar, error)
	ListOverrides() ([]CilinOverride, error)
	ListCipai() ([]Cipai, error)
	GetCipaiByID(id int64) (*Cipai, error)
	GetStatistics() (*Statistics, error)
}

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// ListChars returns every 平水韵 character row
func (r *Repository) ListChars() ([]PingshuiChar, error) {
	var chars []PingshuiChar
	err := r.db.Order("char").Find(&chars).Error
	return chars, err
}

// ListOverrides returns every 词林 override row
func (r *Repository) ListOverrides() ([]CilinOverride, error) {
	var overrides []CilinOverride
	err := r.db.Order("char").Find(&overrides).Error
	return overrides, err
}

// ListCipai returns every template with its variants, ordered by collection
// and ordinal
func (r *Repository) ListCipai() ([]Cipai, error) {
	var cipai []Cipai
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("pu, ordinal")
	}).Order("id").Find(&cipai).Error
	return cipai, err
}

// GetCipaiByID returns one template with its variants
func (r *Repository) GetCipaiByID(id int64) (*Cipai, error) {
	var c Cipai
	err := r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("pu, ordinal")
	}).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
