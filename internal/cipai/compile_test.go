package cipai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSingleSection(t *testing.T) {
	c, err := Compile(yiJiangNan)
	require.NoError(t, err)

	assert.Equal(t, 27, c.Length)
	assert.Equal(t, "中平仄中仄仄平平中仄中平平仄仄中平中仄仄平平中仄仄平平", c.Pattern)
	assert.Equal(t, []Hint{
		{Pos: 2, Word: "句"}, {Pos: 7, Word: "韵"}, {Pos: 14, Word: "句"},
		{Pos: 21, Word: "韵"}, {Pos: 26, Word: "韵"},
	}, c.Hints)
	assert.Equal(t, []int{3}, c.Sections)

	require.Len(t, c.Rhymes, 3)
	for i, pos := range []int{7, 21, 26} {
		assert.Equal(t, pos, c.Rhymes[i].Pos)
		assert.Equal(t, 1, c.Rhymes[i].Group)
		assert.False(t, c.Rhymes[i].Borrowed)
	}
	assert.Equal(t, 1, c.Groups())

	assert.Equal(t, []Clause{
		{Rule: "中平仄句中仄仄平平韵", Example: "江南好　风景旧曾谙", Start: 0, End: 8, Rhyme: 0},
		{Rule: "中仄中平平仄仄句中平中仄仄平平韵", Example: "日出江花红胜火　春来江水绿如蓝", Start: 8, End: 22, Rhyme: 1},
		{Rule: "中仄仄平平韵", Example: "能不忆江南", Start: 22, End: 27, Rhyme: 2},
	}, c.Clauses)
	assert.Empty(t, c.Validate())
}

func TestCompileToneChanges(t *testing.T) {
	c, err := Compile(xiangJianHuan)
	require.NoError(t, err)

	assert.Equal(t, 36, c.Length)
	assert.Equal(t, []int{3, 4}, c.Sections)

	type want struct {
		pos, section, group int
		borrowed            bool
	}
	expected := []want{
		{5, 0, 1, false}, {8, 0, 1, false}, {17, 0, 1, false},
		{20, 1, 2, false}, {23, 1, 2, false},
		{26, 1, 3, false}, {35, 1, 3, false},
	}
	require.Len(t, c.Rhymes, len(expected))
	for i, w := range expected {
		r := c.Rhymes[i]
		assert.Equal(t, w.pos, r.Pos, "rhyme %d", i)
		assert.Equal(t, w.section, r.Section, "rhyme %d", i)
		assert.Equal(t, w.group, r.Group, "rhyme %d", i)
		assert.Equal(t, w.borrowed, r.Borrowed, "rhyme %d", i)
	}
	assert.Equal(t, 3, c.Groups())
	assert.Len(t, c.Clauses, 7)
	assert.Equal(t, "中中仄换仄韵", c.Clauses[3].Rule)
	assert.Empty(t, c.Validate())
}

func TestCompileRepeatedRhyme(t *testing.T) {
	c, err := Compile(changXiangSi)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4}, c.Sections)
	require.Len(t, c.Rhymes, 8)
	assert.Equal(t, "叠韵", c.Rhymes[1].Word)
	for _, r := range c.Rhymes {
		assert.Equal(t, 1, r.Group)
	}
	assert.Equal(t, 0, c.Rhymes[3].Section)
	assert.Equal(t, 1, c.Rhymes[4].Section)
	assert.Empty(t, c.Validate())
}

func TestCompileBorrowedRhyme(t *testing.T) {
	c, err := Compile(Variant{
		Example:     "甲乙丙　丁戊己　庚辛壬　",
		Rule:        "仄平平韵平平仄叶仄韵平平平韵",
		Description: "单调九字，三句三韵",
	})
	require.NoError(t, err)
	require.Len(t, c.Rhymes, 3)
	assert.False(t, c.Rhymes[0].Borrowed)
	assert.True(t, c.Rhymes[1].Borrowed)
	assert.Equal(t, 1, c.Rhymes[1].Group)
	assert.Equal(t, 1, c.Groups())
}

func TestCompileSectionRestart(t *testing.T) {
	// both tones rhyme in the first section, so each starts a new group in the second
	c, err := Compile(Variant{
		Example:     "甲乙　丙丁　戊己　庚辛　",
		Rule:        "平仄韵平平韵平仄韵平平韵",
		Description: "双调八字，前段一仄韵一平韵，后段一仄韵一平韵",
	})
	require.NoError(t, err)
	require.Len(t, c.Rhymes, 4)
	assert.Equal(t, []int{2, 2}, c.Sections)
	var groups []int
	for _, r := range c.Rhymes {
		groups = append(groups, r.Group)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, groups)
}

func TestCompileSameToneAcrossSections(t *testing.T) {
	c, err := Compile(Variant{
		Example:     "甲乙　丙丁　戊己　庚辛　",
		Rule:        "平仄韵平仄韵平平韵平平韵",
		Description: "双调八字，前段两仄韵，后段两平韵",
	})
	require.NoError(t, err)
	var groups []int
	for _, r := range c.Rhymes {
		groups = append(groups, r.Group)
	}
	assert.Equal(t, []int{1, 1, 2, 2}, groups)
}

func TestCompileTrailing(t *testing.T) {
	c, err := Compile(Variant{
		Example:         "甲乙丙　丁戊己　庚辛",
		Rule:            "平平仄句仄仄平韵中中",
		Description:     "单调九字，一韵",
		TrailingOblique: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, c.Length)
	assert.Equal(t, "平平仄仄仄平中中仄", c.Pattern)
	require.Len(t, c.Clauses, 3)
	assert.Equal(t, Clause{Rule: "中中", Example: "庚辛", Start: 6, End: 8, Rhyme: -1}, c.Clauses[1])
	assert.Equal(t, Clause{Rule: "仄句", Start: 8, End: 9, Rhyme: -1}, c.Clauses[2])
	assert.Empty(t, c.Validate())
}

func TestCompilePadding(t *testing.T) {
	c, err := Compile(Variant{
		Example:     "甲乙丙　丁戊己　",
		Rule:        "平平仄句仄仄平韵竹枝",
		Description: "单调六字，一韵",
		Padding:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Length)
	require.Len(t, c.Clauses, 1)
	assert.Equal(t, "平平仄句仄仄平韵竹枝", c.Clauses[0].Rule)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
	}{
		{"rule too short", Variant{Example: "甲乙丙", Rule: "平平"}},
		{"rule too long", Variant{Example: "甲乙", Rule: "平平仄"}},
		{"missing hint", Variant{Example: "甲乙　", Rule: "平平"}},
		{"empty", Variant{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.v)
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsIssues(t *testing.T) {
	c, err := Compile(Variant{
		Example:     "甲乙丙　丁戊己　",
		Rule:        "平平仄句仄仄平嗯",
		Description: "单调七字，两平韵",
	})
	require.NoError(t, err)
	issues := c.Validate()
	assert.Contains(t, issues, "description declares 7 characters, pattern has 6")
	assert.Contains(t, issues, "no rhyme positions")
	assert.Contains(t, issues, "description declares 2 rhymes, rule marks 0")
	assert.Contains(t, issues, `unknown hint word "嗯"`)
}

func TestFill(t *testing.T) {
	c, err := Compile(yiJiangNan)
	require.NoError(t, err)
	content := []rune("江南好风景旧曾谙日出江花红胜火春来江水绿如蓝能不忆江南")
	assert.Equal(t, "江南好　风景旧曾谙", c.Fill(c.Clauses[0], content))
	assert.Equal(t, "能不忆江南", c.Fill(c.Clauses[2], content))
	assert.Equal(t, "南", c.Fill(Clause{Start: 1, End: 2}, content))
}

func TestCompiled_SampleText(t *testing.T) {
	c, err := Compile(yiJiangNan)
	require.NoError(t, err)
	assert.Equal(t, "江南好，风景旧曾谙。日出江花红胜火，春来江水绿如蓝。能不忆江南。", c.SampleText())
	assert.Equal(t, []int{2, 7, 14, 21, 26}, c.Breaks)
}
