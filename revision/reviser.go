package revision

import (
	"context"
	"time"

	"gitlab.com/tozd/go/errors"
)

// Reviser 负责构建提示词、调用模型并清洗输出；不保存任何调用间状态。
type Reviser struct {
	llm Completer
	obs Observer
}

func NewReviser(llm Completer, obs Observer) (*Reviser, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &Reviser{llm: llm, obs: obs}, nil
}

// Revise sends req.Text with a prompt derived from req.Config and returns the
// sanitized completion. Failures are reported to the Observer and returned
// as they came from the Completer.
func (r *Reviser) Revise(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	raw, err := r.llm.Complete(ctx, NewPrompt(req.Text, req.Config), req.Credential)
	if err != nil {
		r.obs.Failed(req.Config, err)
		return "", err
	}

	r.obs.Revised(req.Config, time.Since(start))
	return Sanitize(raw), nil
}
