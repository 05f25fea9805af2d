package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/chinese-poetry-rhythm/internal/cipai"
	"github.com/palemoky/chinese-poetry-rhythm/internal/config"
	"github.com/palemoky/chinese-poetry-rhythm/internal/rhyme"
)

const sampleDir = "../../data"

func loadSample(t *testing.T) *Corpus {
	t.Helper()
	data, err := LoadDir(sampleDir)
	require.NoError(t, err)
	c, err := New(data)
	require.NoError(t, err)
	return c
}

func TestLoadDir(t *testing.T) {
	data, err := LoadDir(sampleDir)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 60}, data.Pingshui['空'])
	assert.Equal(t, []int{98}, data.Pingshui['雪'])
	assert.Equal(t, []int{5}, data.Cilin['来'])

	require.Len(t, data.Templates, 4)
	for i, tmpl := range data.Templates {
		assert.Equal(t, i+1, tmpl.ID, "templates are ordered by id")
	}
	assert.Equal(t, "忆江南", data.Templates[0].Name())
	assert.Len(t, data.Templates[0].Qin, 3)
	assert.Len(t, data.Templates[0].Long, 1)
}

func TestLoadDir_Errors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("multi-character key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PingshuiFile, `{"东风": [1]}`)
		require.NoError(t, os.Mkdir(filepath.Join(dir, CipaiDir), 0o755))
		_, err := LoadDir(dir)
		assert.ErrorContains(t, err, "not a single character")
	})

	t.Run("duplicate template id", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PingshuiFile, `{"东": [1]}`)
		require.NoError(t, os.Mkdir(filepath.Join(dir, CipaiDir), 0o755))
		writeFile(t, dir, filepath.Join(CipaiDir, "a.yaml"), "- id: 7\n  names: [甲]\n")
		writeFile(t, dir, filepath.Join(CipaiDir, "b.yml"), "- id: 7\n  names: [乙]\n")
		_, err := LoadDir(dir)
		assert.ErrorContains(t, err, "already used")
	})

	t.Run("cilin is optional", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, PingshuiFile, `{"东": [1]}`)
		require.NoError(t, os.Mkdir(filepath.Join(dir, CipaiDir), 0o755))
		writeFile(t, dir, filepath.Join(CipaiDir, "notes.txt"), "ignored")
		data, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, data.Cilin)
		assert.Empty(t, data.Templates)
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNew_BadVariant(t *testing.T) {
	data := &Data{
		Pingshui: map[rune][]int{'东': {1}},
		Templates: []*cipai.Template{{
			ID:    9,
			Names: []string{"坏谱"},
			Qin:   []cipai.Variant{{Example: "东风", Rule: "平"}},
		}},
	}
	_, err := New(data)
	assert.ErrorContains(t, err, "坏谱 钦谱 格1")
}

func TestCorpus_Template(t *testing.T) {
	c := loadSample(t)

	tests := []struct {
		query  string
		wantID int
		found  bool
	}{
		{"忆江南", 1, true},
		{"望江南", 1, true},
		{"憶江南", 1, true},
		{"相見歡", 2, true},
		{"乌夜啼", 2, true},
		{" 长相思 ", 3, true},
		{"4", 4, true},
		{"99", 0, false},
		{"水调歌头", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := c.Template(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestCorpus_TemplatesByLength(t *testing.T) {
	c := loadSample(t)

	ids := func(ts []*cipai.Template) []int {
		var out []int
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []int{1}, ids(c.TemplatesByLength(27, cipai.PuQin)))
	assert.Equal(t, []int{1}, ids(c.TemplatesByLength(54, cipai.PuQin)))
	assert.Equal(t, []int{2, 3}, ids(c.TemplatesByLength(36, cipai.PuQin)))
	assert.Equal(t, []int{3}, ids(c.TemplatesByLength(36, cipai.PuLong)))
	assert.Equal(t, []int{4}, ids(c.TemplatesByLength(42, cipai.PuQin)))
	assert.Empty(t, c.TemplatesByLength(42, cipai.PuLong))
	assert.Nil(t, c.TemplatesByLength(27, cipai.Pu(3)))
}

func TestCorpus_Compiled(t *testing.T) {
	c := loadSample(t)
	tmpl, ok := c.Template("忆江南")
	require.True(t, ok)

	qin := c.Compiled(tmpl, cipai.PuQin)
	require.Len(t, qin, 3)
	assert.Equal(t, 27, qin[0].Length)
	assert.Equal(t, 54, qin[1].Length)
	assert.Equal(t, 27, qin[2].Length)
	assert.Equal(t, qin[0].Pattern, qin[2].Pattern, "a 读 break leaves the pattern unchanged")

	assert.Len(t, c.Compiled(tmpl, cipai.PuLong), 1)
	assert.Nil(t, c.Compiled(tmpl, cipai.Pu(0)))
}

func TestCorpus_SampleVariantsValidate(t *testing.T) {
	c := loadSample(t)
	for _, tmpl := range c.Templates() {
		for _, pu := range []cipai.Pu{cipai.PuQin, cipai.PuLong} {
			for i, cv := range c.Compiled(tmpl, pu) {
				assert.Empty(t, cv.Validate(), "%s %s 格%d", tmpl.Name(), pu, i+1)
			}
		}
	}
}

func TestCorpus_Book(t *testing.T) {
	c := loadSample(t)

	for _, id := range []rhyme.BookID{rhyme.BookPingshui, rhyme.BookXinyun, rhyme.BookTongyun} {
		b, err := c.Book(id)
		require.NoError(t, err)
		assert.Equal(t, id, b.ID())
	}
	_, err := c.Book(rhyme.BookID(4))
	assert.Error(t, err)

	ps, _ := c.Book(rhyme.BookPingshui)
	assert.Same(t, c.Pingshui(), ps)
	assert.Equal(t, []int{5}, c.Pingshui().CiClasses('来'))
}

func TestCorpus_Stats(t *testing.T) {
	c := loadSample(t)
	s := c.Stats()
	assert.Equal(t, 143, s.Chars)
	assert.Equal(t, 1, s.Overrides)
	assert.Equal(t, 4, s.Templates)
	assert.Equal(t, 6, s.QinVariants)
	assert.Equal(t, 2, s.LongVariants)
}

func TestOpen_Dir(t *testing.T) {
	c, err := Open(config.DataConfig{Dir: sampleDir, Source: config.SourceJSON})
	require.NoError(t, err)
	assert.Len(t, c.Templates(), 4)
}

func TestSortedChars(t *testing.T) {
	got := SortedChars(map[rune][]int{'雪': {98}, '东': {1}, '中': {1, 60}})
	assert.Equal(t, []rune{'东', '中', '雪'}, got)
}
