package revision

import "context"

// Completer 抽象大模型客户端，便于替换/Mock。
//
// Complete issues exactly one request and returns the raw completion text.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt, credential string) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	BaseURL string
}
