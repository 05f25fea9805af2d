package processor

import (
	"encoding/json"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	"github.com/palemoky/chinese-poetry-rhythm/internal/database"
	"github.com/palemoky/chinese-poetry-rhythm/internal/hanzi"
	"github.com/palemoky/chinese-poetry-rhythm/internal/logger"
)

const (
	// Dynamic batch sizing thresholds (percentage of channel capacity)
	channelPressureHigh   = 0.8
	channelPressureMedium = 0.5
	channelPressureLow    = 0.2

	MaxErrorsToCollect = 100
	SampleErrorCount   = 5
)

// getOptimalConfig returns channel buffers and batch bounds sized to the machine
func getOptimalConfig() (workBuffer, resultBuffer, errorBuffer, defaultBatch, minBatch, maxBatch int) {
	cpuCount := runtime.NumCPU()

	switch {
	case cpuCount <= 2:
		return 50, 200, 50, 50, 20, 100
	case cpuCount <= 4:
		return 75, 400, 75, 100, 40, 200
	case cpuCount <= 8:
		return 100, 800, 100, 150, 60, 300
	default:
		return 300, 1500, 300, 200, 80, 400
	}
}

// Processor imports a corpus into the SQLite store
type Processor struct {
	repo            database.RepositoryInterface
	workers         int
	batchSize       int // rows per insert statement
	transactionSize int // templates per transaction
	flushSize       int // base number of templates collected before a flush
	minFlushSize    int
	maxFlushSize    int
	progress        bool
	log             *zap.Logger
}

// NewProcessor creates a processor writing through repo
func NewProcessor(repo database.RepositoryInterface, cfg config.ImportConfig) *Processor {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	_, _, _, defaultFlush, minFlush, maxFlush := getOptimalConfig()

	return &Processor{
		repo:            repo,
		workers:         workers,
		batchSize:       cfg.BatchSize,
		transactionSize: cfg.TransactionSize,
		flushSize:       defaultFlush,
		minFlushSize:    minFlush,
		maxFlushSize:    maxFlush,
		progress:        true,
		log:             logger.Named("import"),
	}
}

// SetBatchSize sets the number of rows per insert statement
func (p *Processor) SetBatchSize(size int) {
	if size > 0 {
		p.batchSize = size
	}
}

// SetProgress enables or disables the progress bars
func (p *Processor) SetProgress(enabled bool) {
	p.progress = enabled
}

// Import writes the character tables and all templates. Templates are
// compiled concurrently; a template that fails to compile is skipped and
// reported in the returned error after the rest are written.
func (p *Processor) Import(data *corpus.Data) (*Result, error) {
	res := &Result{}

	chars := charRows(data.Pingshui, func(ch string, classes datatypes.JSON) *database.PingshuiChar {
		return &database.PingshuiChar{Char: ch, Classes: classes}
	})
	if err := p.repo.BatchInsertChars(chars, p.batchSize); err != nil {
		return nil, fmt.Errorf("failed to insert pingshui characters: %w", err)
	}
	res.Chars = len(chars)

	overrides := charRows(data.Cilin, func(ch string, classes datatypes.JSON) *database.CilinOverride {
		return &database.CilinOverride{Char: ch, Classes: classes}
	})
	if err := p.repo.BatchInsertOverrides(overrides, p.batchSize); err != nil {
		return nil, fmt.Errorf("failed to insert cilin overrides: %w", err)
	}
	res.Overrides = len(overrides)
	p.log.Info("Character tables written", zap.Int("chars", res.Chars), zap.Int("overrides", res.Overrides))

	if err := p.importTemplates(data.Templates, res); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Processor) importTemplates(templates []*cipai.Template, res *Result) error {
	total := len(templates)
	p.log.Info("Processing templates",
		zap.Int("templates", total),
		zap.Int("workers", p.workers),
		zap.Int("batch_size", p.batchSize),
	)

	var progress *mpb.Progress
	var bar *mpb.Bar
	if p.progress {
		progress = mpb.New(
			mpb.WithWidth(60),
			mpb.WithRefreshRate(100*time.Millisecond),
		)
		bar = progress.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("Compiling: ", decor.WC{W: 12, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WC{W: 5}),
				decor.Name(" | "),
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}),
			),
		)
	}

	workBuffer, resultBuffer, errorBuffer, _, _, _ := getOptimalConfig()
	workCh := make(chan *cipai.Template, workBuffer)
	resultCh := make(chan templateResult, resultBuffer)
	errorCh := make(chan error, errorBuffer)
	var wg sync.WaitGroup
	var errorCount atomic.Int64

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for t := range workCh {
				r, err := processTemplate(t)
				if err != nil {
					errorCount.Add(1)
					select {
					case errorCh <- fmt.Errorf("worker %d: %s: %w", workerID, t.Name(), err):
					default:
					}
				} else {
					resultCh <- r
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}(i)
	}

	insertDone := make(chan error, 1)
	var issues []Issue
	var written, variants int
	go func() {
		insertDone <- p.batchInserter(resultCh, progress, func(rows []*database.Cipai, found []Issue) {
			written += len(rows)
			for _, r := range rows {
				variants += len(r.Variants)
			}
			issues = append(issues, found...)
		})
	}()

	go func() {
		for _, t := range templates {
			workCh <- t
		}
		close(workCh)
	}()

	wg.Wait()
	close(resultCh)
	insertErr := <-insertDone
	close(errorCh)
	if progress != nil {
		progress.Wait()
	}
	if insertErr != nil {
		return fmt.Errorf("batch insertion failed: %w", insertErr)
	}

	slices.SortFunc(issues, func(a, b Issue) int {
		if a.TemplateID != b.TemplateID {
			return a.TemplateID - b.TemplateID
		}
		if a.Pu != b.Pu {
			return int(a.Pu) - int(b.Pu)
		}
		return a.Variant - b.Variant
	})
	res.Templates, res.Variants, res.Issues = written, variants, issues

	var errs []error
	for err := range errorCh {
		errs = append(errs, err)
		if len(errs) >= MaxErrorsToCollect {
			break
		}
	}
	if failed := errorCount.Load(); failed > 0 {
		p.log.Warn("Some templates failed to compile",
			zap.Int64("failed", failed),
			zap.Int("imported", written),
		)
		for i := 0; i < min(len(errs), SampleErrorCount); i++ {
			p.log.Warn("Template error", zap.Int("sample", i+1), zap.Error(errs[i]))
		}
		return fmt.Errorf("import completed with %d errors", failed)
	}

	p.log.Info("Templates written",
		zap.Int("templates", written),
		zap.Int("variants", variants),
		zap.Int("issues", len(issues)),
	)
	return nil
}

// batchInserter collects templates and flushes them in transactions, sizing
// each flush by the pressure on the result channel
func (p *Processor) batchInserter(resultCh <-chan templateResult, progress *mpb.Progress, done func([]*database.Cipai, []Issue)) error {
	batch := make([]*database.Cipai, 0, p.maxFlushSize)
	var issues []Issue
	current := p.flushSize

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.repo.BatchInsertCipaiWithTransaction(batch, p.transactionSize, p.batchSize, progress); err != nil {
			return fmt.Errorf("failed to insert batch of %d templates: %w", len(batch), err)
		}
		done(batch, issues)
		batch = make([]*database.Cipai, 0, p.maxFlushSize)
		issues = nil
		return nil
	}

	for r := range resultCh {
		batch = append(batch, r.row)
		issues = append(issues, r.issues...)

		utilization := float64(len(resultCh)) / float64(cap(resultCh))
		next := p.calculateBatchSize(utilization, current)
		if next != current {
			p.log.Debug("Adjusting flush size",
				zap.Float64("utilization", utilization),
				zap.Int("from", current),
				zap.Int("to", next),
			)
		}
		current = next

		if len(batch) >= current {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// calculateBatchSize picks the flush size for the given channel utilization
func (p *Processor) calculateBatchSize(utilization float64, currentSize int) int {
	switch {
	case utilization >= channelPressureHigh:
		return p.minFlushSize
	case utilization >= channelPressureMedium:
		return p.flushSize
	case utilization <= channelPressureLow:
		return p.maxFlushSize
	default:
		return currentSize
	}
}

// processTemplate compiles every variant of t and builds its database row
func processTemplate(t *cipai.Template) (templateResult, error) {
	names, err := json.Marshal(t.Names)
	if err != nil {
		return templateResult{}, fmt.Errorf("failed to marshal names: %w", err)
	}

	trad := t.NamesTrad
	if len(trad) == 0 {
		for _, n := range t.Names {
			converted, err := hanzi.ToTraditional(n)
			if err != nil {
				return templateResult{}, fmt.Errorf("failed to convert name %s: %w", n, err)
			}
			trad = append(trad, converted)
		}
	}
	namesTrad, err := json.Marshal(trad)
	if err != nil {
		return templateResult{}, fmt.Errorf("failed to marshal traditional names: %w", err)
	}

	name := t.Name()
	row := &database.Cipai{
		ID:             int64(t.ID),
		Name:           name,
		Names:          datatypes.JSON(names),
		NamesTrad:      datatypes.JSON(namesTrad),
		NamePinyin:     hanzi.ToPinyinNoTone(name),
		NamePinyinAbbr: hanzi.ToPinyinAbbr(name),
		NameReadings:   NameReadings(name),
	}

	var issues []Issue
	for _, pu := range []cipai.Pu{cipai.PuQin, cipai.PuLong} {
		for i, v := range t.Variants(pu) {
			cv, err := cipai.Compile(v)
			if err != nil {
				return templateResult{}, fmt.Errorf("%s 格%d: %w", pu, i+1, err)
			}
			for _, msg := range cv.Validate() {
				issues = append(issues, Issue{TemplateID: t.ID, Name: name, Pu: pu, Variant: i + 1, Message: msg})
			}
			row.Variants = append(row.Variants, database.CipaiVariant{
				Pu:              int(pu),
				Ordinal:         i + 1,
				Length:          cv.Length,
				Example:         v.Example,
				Rule:            v.Rule,
				Description:     v.Description,
				Padding:         v.Padding,
				TrailingOblique: v.TrailingOblique,
			})
		}
	}
	return templateResult{row: row, issues: issues}, nil
}

// NameReadings joins the compact pinyin of every reading combination of
// name, followed by their abbreviations. Heteronyms such as 长 and 乐 make
// a name searchable under each reading.
func NameReadings(name string) string {
	var full, abbr []string
	for _, combo := range hanzi.PinyinCombinations(name) {
		syllables := strings.Fields(combo)
		full = append(full, strings.Join(syllables, ""))

		var b strings.Builder
		for _, py := range syllables {
			b.WriteByte(py[0])
		}
		if a := b.String(); !slices.Contains(abbr, a) {
			abbr = append(abbr, a)
		}
	}
	return strings.Join(append(full, abbr...), " ")
}

// Validate compiles every template variant and collects the consistency
// issues without writing anything.
func Validate(templates []*cipai.Template) ([]Issue, error) {
	var issues []Issue
	for _, t := range templates {
		r, err := processTemplate(t)
		if err != nil {
			return issues, fmt.Errorf("%s: %w", t.Name(), err)
		}
		issues = append(issues, r.issues...)
	}
	return issues, nil
}

func charRows[T any](table map[rune][]int, row func(string, datatypes.JSON) *T) []*T {
	out := make([]*T, 0, len(table))
	for _, ch := range corpus.SortedChars(table) {
		// marshaling a []int cannot fail
		classes, _ := json.Marshal(table[ch])
		out = append(out, row(string(ch), datatypes.JSON(classes)))
	}
	return out
}
