package rhyme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPingshui() *Pingshui {
	return NewPingshui(map[rune][]int{
		'东': {1}, '空': {1, 60}, '中': {1, 60}, '山': {15}, '闲': {15},
		'来': {10}, '间': {15, 75}, '雪': {98}, '绝': {98}, '灭': {98},
		'江': {3}, '家': {21}, '花': {21},
	}, map[rune][]int{'来': {5}})
}

func TestPingshuiNames(t *testing.T) {
	require.Len(t, pingshuiNames, PingshuiClasses)
	assert.Equal(t, "东", ClassName(1))
	assert.Equal(t, "咸", ClassName(30))
	assert.Equal(t, "董", ClassName(31))
	assert.Equal(t, "送", ClassName(60))
	assert.Equal(t, "屋", ClassName(90))
	assert.Equal(t, "洽", ClassName(106))
	assert.Empty(t, ClassName(0))
	assert.Empty(t, ClassName(107))
}

func TestClassTone(t *testing.T) {
	tests := []struct {
		class int
		want  string
	}{
		{1, "上平"}, {15, "上平"}, {16, "下平"}, {30, "下平"},
		{31, "上声"}, {59, "上声"}, {60, "去声"}, {89, "去声"},
		{90, "入声"}, {106, "入声"}, {0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassTone(tt.class), "class %d", tt.class)
	}
}

func TestCilinTableComplete(t *testing.T) {
	for c := 1; c <= PingshuiClasses; c++ {
		groups := cilinOf[c]
		require.NotEmpty(t, groups, "class %d", c)
		for _, g := range groups {
			switch {
			case c <= lastLevelClass:
				assert.True(t, g >= 1 && g <= 14, "class %d → %d", c, g)
			case c < 90:
				assert.True(t, g <= -1 && g >= -14, "class %d → %d", c, g)
			default:
				assert.True(t, g >= 15 && g <= 19, "class %d → %d", c, g)
			}
		}
	}
}

func TestPingshuiTone(t *testing.T) {
	p := testPingshui()
	tests := []struct {
		ch   rune
		want Tone
	}{
		{'东', ToneLevel},
		{'雪', ToneOblique},
		{'空', ToneHeteronym},
		{'间', ToneHeteronym},
		{'龘', ToneHeteronym},
	}
	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Tone(tt.ch))
		})
	}
	assert.Equal(t, "1120", Tones(p, "东山雪空"))
}

func TestPingshuiVariantFallback(t *testing.T) {
	p := testPingshui()
	// 間 is only present under its simplified form
	assert.Equal(t, []int{15, 75}, p.Classes('間'))
	assert.Equal(t, []int{3}, p.Classes('江'))
}

func TestPingshuiCiClasses(t *testing.T) {
	p := testPingshui()
	assert.Equal(t, []int{1}, p.CiClasses('东'))
	assert.Equal(t, []int{1, -1}, p.CiClasses('空'))
	assert.Equal(t, []int{18}, p.CiClasses('雪'))
	assert.Equal(t, []int{5}, p.CiClasses('来'), "override wins over 灰 → 三部/五部")
	assert.Equal(t, []int{7, -7}, p.CiClasses('间'))
	assert.Nil(t, p.CiClasses('龘'))
}

func TestPingshuiAdjacent(t *testing.T) {
	p := testPingshui()
	// 寒 (14) and 删 (15) share 词林 七部
	assert.True(t, p.Adjacent(14, '山'))
	assert.True(t, p.Adjacent(15, '山'))
	// 东 (1) and 冬 (2) share 一部; 东 and 江 do not
	assert.True(t, p.Adjacent(2, '东'))
	assert.False(t, p.Adjacent(3, '东'))
	// oblique modes never license a neighbor rhyme
	assert.False(t, p.Adjacent(60, '东'))
	assert.False(t, p.Adjacent(98, '雪'))
}

func TestPingshuiLabels(t *testing.T) {
	p := testPingshui()
	assert.Equal(t, "东韵、送韵", p.ShiLabel([]int{60, 1}))
	assert.Equal(t, "屑韵", p.ShiLabel([]int{98}))
	assert.Equal(t, "一部平、一部仄", p.CiLabel([]int{1, -1, 1}))
	assert.Equal(t, "十八部入声", p.CiLabel([]int{18}))
	assert.Equal(t, "十四部平", p.CiLabel([]int{14}))
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []int{1, 60}, Intersect([]int{1, 60, 1}, []int{60, 1}))
	assert.Nil(t, Intersect([]int{1}, []int{2}))
	assert.Nil(t, Intersect(nil, []int{2}))
}

func TestParseBookID(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		id, err := ParseBookID(n)
		require.NoError(t, err)
		assert.Equal(t, BookID(n), id)
	}
	_, err := ParseBookID(4)
	assert.Error(t, err)
	assert.Equal(t, "中华通韵", BookTongyun.String())
}
