package hanzi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeral(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "零"},
		{1, "一"},
		{5, "五"},
		{10, "十"},
		{11, "十一"},
		{19, "十九"},
		{20, "二十"},
		{27, "二十七"},
		{99, "九十九"},
		{100, "一百"},
		{105, "一百零五"},
		{110, "一百一十"},
		{1001, "一千零一"},
		{-1, "-1"},
		{10000, "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Numeral(tt.input))
		})
	}
}

func TestParseNumeral(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"一", 1, true},
		{"两", 2, true},
		{"十", 10, true},
		{"十一", 11, true},
		{"二十七", 27, true},
		{"三十六", 36, true},
		{"一百零五", 105, true},
		{"", 0, false},
		{"十x", 0, false},
		{"韵", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumeral(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
