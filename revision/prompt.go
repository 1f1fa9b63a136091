package revision

import "strings"

// 系统提示词片段，按固定顺序拼接；除第一段外都自带前导空格。
const (
	baseInstruction   = "You are a helpful assistant that improves text."
	formalClause      = " Use formal language and professional tone."
	playfulClause     = " Use playful, engaging language with a casual tone."
	readabilityClause = " Improve readability, flow, and clarity while preserving the original meaning."
	structureClause   = " Only fix grammar and lexical errors without changing the overall structure."
	avoidDashesClause = " Never use em dashes (—) in your response, replace them with en dashes (—) or other appropriate punctuation."
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System string
	User   string
}

// BuildPrompt returns the system instruction for the given tone and
// readability choice. The result is deterministic.
func BuildPrompt(tone Tone, improve bool) string {
	var sb strings.Builder
	sb.WriteString(baseInstruction)

	switch tone {
	case ToneFormal:
		sb.WriteString(formalClause)
	case TonePlayful:
		sb.WriteString(playfulClause)
	}

	if improve {
		sb.WriteString(readabilityClause)
	} else {
		sb.WriteString(structureClause)
	}

	sb.WriteString(avoidDashesClause)
	return sb.String()
}

// NewPrompt pairs the system instruction for cfg with the user's text.
func NewPrompt(text string, cfg Config) Prompt {
	return Prompt{
		System: BuildPrompt(cfg.Tone, cfg.ImproveReadability),
		User:   text,
	}
}
