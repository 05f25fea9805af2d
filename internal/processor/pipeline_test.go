package processor

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/corpus"
	"github.com/palemoky/chinese-poetry-rhythm/internal/testutil"
)

var importConfig = config.ImportConfig{Workers: 2, BatchSize: 50, TransactionSize: 2}

func TestGetOptimalConfig(t *testing.T) {
	workBuf, resultBuf, errorBuf, defaultBatch, minBatch, maxBatch := getOptimalConfig()

	assert.Greater(t, workBuf, 0, "workBuffer should be positive")
	assert.Greater(t, resultBuf, 0, "resultBuffer should be positive")
	assert.Greater(t, errorBuf, 0, "errorBuffer should be positive")
	assert.Greater(t, minBatch, 0, "minBatch should be positive")

	assert.LessOrEqual(t, minBatch, defaultBatch, "minBatch <= defaultBatch")
	assert.LessOrEqual(t, defaultBatch, maxBatch, "defaultBatch <= maxBatch")
}

func TestNewProcessor(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)

	tests := []struct {
		name        string
		workers     int
		wantWorkers int
	}{
		{"default workers", 0, runtime.NumCPU()},
		{"specific workers", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessor(repo, config.ImportConfig{Workers: tt.workers, BatchSize: 10})
			assert.Equal(t, tt.wantWorkers, p.workers)
			assert.Equal(t, 10, p.batchSize)
		})
	}
}

func TestSetBatchSize(t *testing.T) {
	proc := &Processor{batchSize: 100}

	tests := []struct {
		name     string
		newSize  int
		wantSize int
	}{
		{"set valid size", 200, 200},
		{"ignore zero", 0, 200},
		{"ignore negative", -10, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc.SetBatchSize(tt.newSize)
			assert.Equal(t, tt.wantSize, proc.batchSize)
		})
	}
}

func TestCalculateBatchSize(t *testing.T) {
	p := &Processor{flushSize: 100, minFlushSize: 40, maxFlushSize: 200}

	assert.Equal(t, 40, p.calculateBatchSize(0.9, 100))
	assert.Equal(t, 100, p.calculateBatchSize(0.6, 40))
	assert.Equal(t, 200, p.calculateBatchSize(0.1, 100))
	assert.Equal(t, 70, p.calculateBatchSize(0.3, 70))
}

func TestImport(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(t, err)

	p := NewProcessor(repo, importConfig)
	p.SetProgress(false)
	res, err := p.Import(data)
	require.NoError(t, err)

	assert.Equal(t, len(data.Pingshui), res.Chars)
	assert.Equal(t, len(data.Cilin), res.Overrides)
	assert.Equal(t, len(data.Templates), res.Templates)
	assert.Equal(t, 8, res.Variants)
	assert.Empty(t, res.Issues)

	stats, err := repo.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(res.Chars), stats.TotalChars)
	assert.Equal(t, int64(4), stats.TotalCipai)
	assert.Equal(t, int64(6), stats.QinVariants)
	assert.Equal(t, int64(2), stats.LongVariants)

	row, err := repo.GetCipaiByID(1)
	require.NoError(t, err)
	assert.Equal(t, "忆江南", row.Name)
	assert.Equal(t, "yi jiang nan", row.NamePinyin)
	assert.Equal(t, "yjn", row.NamePinyinAbbr)
	require.Len(t, row.Variants, 4)
	assert.Equal(t, 27, row.Variants[0].Length)
	assert.Equal(t, 54, row.Variants[1].Length)
	assert.Equal(t, int(cipai.PuLong), row.Variants[3].Pu)
}

func TestImport_Idempotent(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(t, err)

	p := NewProcessor(repo, importConfig)
	p.SetProgress(false)
	_, err = p.Import(data)
	require.NoError(t, err)
	_, err = p.Import(data)
	require.NoError(t, err)

	stats, err := repo.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalCipai)
	assert.Equal(t, int64(6), stats.QinVariants)
}

func TestImport_BadTemplate(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	data := &corpus.Data{
		Pingshui: map[rune][]int{'东': {1}},
		Templates: []*cipai.Template{
			{ID: 1, Names: []string{"好词"}, Qin: []cipai.Variant{{Example: "江南好　", Rule: "中平仄韵"}}},
			{ID: 2, Names: []string{"坏谱"}, Qin: []cipai.Variant{{Example: "江南好　", Rule: "中平"}}},
		},
	}

	p := NewProcessor(repo, importConfig)
	p.SetProgress(false)
	res, err := p.Import(data)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Templates)

	_, err = repo.GetCipaiByID(1)
	assert.NoError(t, err)
	_, err = repo.GetCipaiByID(2)
	assert.Error(t, err)
}

func TestProcessTemplate_TraditionalNames(t *testing.T) {
	r, err := processTemplate(&cipai.Template{
		ID:    7,
		Names: []string{"忆江南"},
		Qin:   []cipai.Variant{{Example: "江南好　", Rule: "中平仄韵", Description: "单调三字，一韵"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["忆江南"]`, string(r.row.Names))
	assert.JSONEq(t, `["憶江南"]`, string(r.row.NamesTrad))
	assert.Empty(t, r.issues)
}

func TestNameReadings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		include []string
	}{
		{name: "heteronym 长", input: "长相思", include: []string{"changxiangsi", "zhangxiangsi", "cxs", "zxs"}},
		{name: "heteronym 乐", input: "清平乐", include: []string{"qingpingyue", "qingpingle", "qpy", "qpl"}},
		{name: "empty", input: "", include: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Fields(NameReadings(tt.input))
			for _, want := range tt.include {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestImport_StoresNameReadings(t *testing.T) {
	_, repo := testutil.SetupTestDB(t)
	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(t, err)

	p := NewProcessor(repo, importConfig)
	p.SetProgress(false)
	_, err = p.Import(data)
	require.NoError(t, err)

	row, err := repo.GetCipaiByID(3)
	require.NoError(t, err)
	assert.Equal(t, "长相思", row.Name)
	assert.Contains(t, strings.Fields(row.NameReadings), "changxiangsi")
}

func TestValidate(t *testing.T) {
	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(t, err)
	issues, err := Validate(data.Templates)
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = Validate([]*cipai.Template{{
		ID:    9,
		Names: []string{"测试"},
		Long:  []cipai.Variant{{Example: "江南好　", Rule: "中平仄句", Description: "单调五字"}},
	}})
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, cipai.PuLong, issues[0].Pu)
	assert.Equal(t, 1, issues[0].Variant)
	assert.Contains(t, issues[0].Message, "declares 5 characters")
	assert.Equal(t, "no rhyme positions", issues[1].Message)
}

func BenchmarkGetOptimalConfig(b *testing.B) {
	for b.Loop() {
		getOptimalConfig()
	}
}

func BenchmarkValidate(b *testing.B) {
	data, err := corpus.LoadDir(testutil.DataDir())
	require.NoError(b, err)
	for b.Loop() {
		_, _ = Validate(data.Templates)
	}
}
