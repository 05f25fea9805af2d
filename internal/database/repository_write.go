package database

import (
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
)

// Write operations for data import

// BatchInsertChars inserts 平水韵 rows in batches, replacing the classes of
// characters that already exist
func (r *Repository) BatchInsertChars(chars []*PingshuiChar, batchSize int) error {
	if len(chars) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "char"}},
		DoUpdates: clause.AssignmentColumns([]string{"classes"}),
	}).CreateInBatches(chars, batchSize).Error
}

// BatchInsertOverrides inserts 词林 override rows in batches
func (r *Repository) BatchInsertOverrides(overrides []*CilinOverride, batchSize int) error {
	if len(overrides) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "char"}},
		DoUpdates: clause.AssignmentColumns([]string{"classes"}),
	}).CreateInBatches(overrides, batchSize).Error
}

// BatchInsertCipaiWithTransaction writes templates in large transactions.
// A template that already exists is updated and its variants replaced.
// transactionSize: number of templates per transaction
// batchSize: number of variants per insert statement
// progress: progress container for displaying insert progress, may be nil
func (r *Repository) BatchInsertCipaiWithTransaction(cipai []*Cipai, transactionSize, batchSize int, progress *mpb.Progress) error {
	if len(cipai) == 0 {
		return nil
	}
	if transactionSize <= 0 {
		transactionSize = 200
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	totalTransactions := (len(cipai) + transactionSize - 1) / transactionSize

	var bar *mpb.Bar
	if progress != nil {
		bar = progress.AddBar(int64(len(cipai)),
			mpb.PrependDecorators(
				decor.Name("Inserting Cipai: ", decor.WC{W: 17, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WC{W: 5}),
				decor.Name(" | "),
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}),
			),
		)
	}

	logger.Debug("Starting template insertion",
		zap.Int("cipai", len(cipai)),
		zap.Int("transactions", totalTransactions),
		zap.Int("batch_size", batchSize),
	)

	for i := 0; i < len(cipai); i += transactionSize {
		end := min(i+transactionSize, len(cipai))
		chunk := cipai[i:end]

		err := r.db.Transaction(func(tx *gorm.DB) error {
			for _, c := range chunk {
				if err := upsertCipai(tx, c, batchSize); err != nil {
					return fmt.Errorf("cipai %d (%s): %w", c.ID, c.Name, err)
				}
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
		if err != nil {
			txNum := i/transactionSize + 1
			return fmt.Errorf("failed to insert transaction %d/%d (cipai %d-%d): %w",
				txNum, totalTransactions, i, end, err)
		}
	}

	return nil
}

func upsertCipai(tx *gorm.DB, c *Cipai, batchSize int) error {
	err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "names", "names_trad", "name_pinyin", "name_pinyin_abbr", "name_readings"}),
	}).Create(c).Error
	if err != nil {
		return err
	}

	if err := tx.Where("cipai_id = ?", c.ID).Delete(&CipaiVariant{}).Error; err != nil {
		return err
	}
	if len(c.Variants) == 0 {
		return nil
	}
	for i := range c.Variants {
		c.Variants[i].CipaiID = c.ID
		c.Variants[i].ID = 0
	}
	return tx.CreateInBatches(&c.Variants, batchSize).Error
}
