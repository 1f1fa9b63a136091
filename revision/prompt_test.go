package revision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name    string
		tone    Tone
		improve bool
		want    string
	}{
		{
			name: "original keeps structure",
			tone: ToneOriginal,
			want: baseInstruction + structureClause + avoidDashesClause,
		},
		{
			name:    "original improves readability",
			tone:    ToneOriginal,
			improve: true,
			want:    baseInstruction + readabilityClause + avoidDashesClause,
		},
		{
			name:    "formal improves readability",
			tone:    ToneFormal,
			improve: true,
			want:    baseInstruction + formalClause + readabilityClause + avoidDashesClause,
		},
		{
			name: "playful keeps structure",
			tone: TonePlayful,
			want: baseInstruction + playfulClause + structureClause + avoidDashesClause,
		},
		{
			name: "unknown tone adds no clause",
			tone: Tone("sarcastic"),
			want: baseInstruction + structureClause + avoidDashesClause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(tt.tone, tt.improve)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasSuffix(got, avoidDashesClause))
			assert.Equal(t, got, BuildPrompt(tt.tone, tt.improve), "must be deterministic")
		})
	}
}

func TestBuildPrompt_OriginalWithoutReadability(t *testing.T) {
	got := BuildPrompt(ToneOriginal, false)

	assert.True(t, strings.HasSuffix(got, structureClause+avoidDashesClause))
	assert.NotContains(t, got, formalClause)
	assert.NotContains(t, got, playfulClause)
	assert.NotContains(t, got, readabilityClause)
}

func TestBuildPrompt_FormalClauseBeforeReadability(t *testing.T) {
	got := BuildPrompt(ToneFormal, true)

	formal := strings.Index(got, formalClause)
	readable := strings.Index(got, readabilityClause)
	require.NotEqual(t, -1, formal)
	require.NotEqual(t, -1, readable)
	assert.Less(t, formal, readable)
	assert.NotContains(t, got, structureClause)
}

func TestNewPrompt(t *testing.T) {
	p := NewPrompt("fix me", Config{Tone: TonePlayful, ImproveReadability: true})

	assert.Equal(t, "fix me", p.User)
	assert.Equal(t, BuildPrompt(TonePlayful, true), p.System)
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		input   string
		want    Tone
		wantErr bool
	}{
		{input: "original", want: ToneOriginal},
		{input: "Formal", want: ToneFormal},
		{input: " PLAYFUL ", want: TonePlayful},
		{input: "", wantErr: true},
		{input: "grumpy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTone_LabelAndNext(t *testing.T) {
	assert.Equal(t, "Formal", ToneFormal.Label())
	assert.Equal(t, "", Tone("").Label())

	assert.Equal(t, ToneFormal, ToneOriginal.Next())
	assert.Equal(t, TonePlayful, ToneFormal.Next())
	assert.Equal(t, ToneOriginal, TonePlayful.Next())
	assert.Equal(t, ToneOriginal, Tone("bogus").Next())

	assert.Equal(t, []Tone{ToneOriginal, ToneFormal, TonePlayful}, Tones())
}
