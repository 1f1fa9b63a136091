package revision

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Tone 选择改写后文本的语气。
type Tone string

const (
	ToneOriginal Tone = "original"
	ToneFormal   Tone = "formal"
	TonePlayful  Tone = "playful"
)

var tones = []Tone{ToneOriginal, ToneFormal, TonePlayful}

// Tones returns every tone in display order.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

// ParseTone accepts a tone name in any letter case.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range tones {
		if t == known {
			return t, nil
		}
	}
	return "", errors.Errorf("unknown tone %q", s)
}

// Label is the capitalized name shown in selectors.
func (t Tone) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Next cycles through Tones, wrapping at the end.
func (t Tone) Next() Tone {
	for i, known := range tones {
		if t == known {
			return tones[(i+1)%len(tones)]
		}
	}
	return ToneOriginal
}

// Config 决定一次生成的提示词，每次请求内不可变。
type Config struct {
	Tone               Tone
	ImproveReadability bool
}

// Request is built fresh for every call and never persisted.
type Request struct {
	Text       string
	Config     Config
	Credential string
}
