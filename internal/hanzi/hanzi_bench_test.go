package hanzi

import (
	"testing"
)

// BenchmarkExtract benchmarks input extraction
func BenchmarkExtract(b *testing.B) {
	testCases := []struct {
		name  string
		input string
	}{
		{"quatrain", "人闲桂花落，夜静春山空。月出惊山鸟，时鸣春涧中。"},
		{"annotated", "江南好（一作忆江南），风景旧曾谙。日出江花红胜火，春来江水绿如蓝。能不忆江南？"},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			b.ResetTimer()
			for b.Loop() {
				_ = Extract(tc.input)
				_ = Breaks(tc.input)
			}
		})
	}
}

// BenchmarkReadings benchmarks pinyin reading lookup
func BenchmarkReadings(b *testing.B) {
	for b.Loop() {
		for _, r := range "人闲桂花落夜静春山空" {
			_ = Readings(r)
		}
	}
}

// BenchmarkToTraditional benchmarks the ToTraditional function
func BenchmarkToTraditional(b *testing.B) {
	for b.Loop() {
		_, _ = ToTraditional("床前明月光，疑是地上霜。举头望明月，低头思故乡。")
	}
}
