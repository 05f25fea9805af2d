package hanzi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "punctuation dropped", input: "江南好，风景旧曾谙。", want: "江南好风景旧曾谙"},
		{name: "annotation dropped", input: "江南好（一作忆江南），风景旧曾谙", want: "江南好风景旧曾谙"},
		{name: "half-width annotation", input: "春来(lai)江水", want: "春来江水"},
		{name: "latin and digits", input: "abc 123 月", want: "月"},
		{name: "compatibility ideograph", input: "豈", want: "豈"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.input))
		})
	}
}

func TestExtractWithPunctuation(t *testing.T) {
	got := ExtractWithPunctuation("江南好，风景旧曾谙。 (注) 日出江花红胜火!")
	assert.Equal(t, "江南好，风景旧曾谙。日出江花红胜火!", got)
}

func TestBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "one mark per clause", input: "江南好，风景旧曾谙。", want: []int{2, 7}},
		{name: "runs count once", input: "江南好！！风景", want: []int{2}},
		{name: "clause marks", input: "江南好　风景旧曾谙　　", want: []int{2, 7}},
		{name: "leading mark ignored", input: "，江南", want: nil},
		{name: "no marks", input: "江南好", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breaks(tt.input))
		})
	}
}

func TestIsPunctuation(t *testing.T) {
	for _, r := range "，。？！、：,.?!:　" {
		assert.True(t, IsPunctuation(r), string(r))
	}
	assert.False(t, IsPunctuation('江'))
	assert.False(t, IsPunctuation(';'))
}

func TestTrimAllWhitespace(t *testing.T) {
	assert.Equal(t, "江南", TrimAllWhitespace(" 江 南\n"))
}
