package hanzi

import (
	"fmt"

	"github.com/liuzl/gocc"
)

var (
	s2t *gocc.OpenCC // Simplified to Traditional
	t2s *gocc.OpenCC // Traditional to Simplified
)

func init() {
	var err error

	s2t, err = gocc.New("s2t")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize s2t converter: %v", err))
	}

	t2s, err = gocc.New("t2s")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize t2s converter: %v", err))
	}
}

// ToTraditional converts simplified Chinese to traditional Chinese
func ToTraditional(text string) (string, error) {
	return s2t.Convert(text)
}

// ToSimplified converts traditional Chinese to simplified Chinese
func ToSimplified(text string) (string, error) {
	return t2s.Convert(text)
}

// Variants returns the other-script forms of a single character: its
// simplified form followed by its traditional form, skipping forms equal
// to ch or that do not map to exactly one character.
func Variants(ch rune) []rune {
	var out []rune
	for _, convert := range []func(string) (string, error){ToSimplified, ToTraditional} {
		converted, err := convert(string(ch))
		if err != nil {
			continue
		}
		runes := []rune(converted)
		if len(runes) != 1 || runes[0] == ch {
			continue
		}
		if len(out) == 1 && out[0] == runes[0] {
			continue
		}
		out = append(out, runes[0])
	}
	return out
}

// ToScript converts text into the given script. Simplified text is returned
// unchanged.
func ToScript(text string, script Script) (string, error) {
	if script == ScriptHant {
		return ToTraditional(text)
	}
	return text, nil
}
