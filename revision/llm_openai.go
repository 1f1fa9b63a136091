package revision

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"gitlab.com/tozd/go/errors"
)

// 固定的生成参数，不开放给用户配置。
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	Model          = openai.ChatModelGPT3_5Turbo
	Temperature    = 0.7
	MaxTokens      = 1000
)

// OpenAIClient implements Completer with the official openai-go SDK (chat
// completions). Retries are switched off: one call, one request.
type OpenAIClient struct {
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(cfg *LLMSettings, client *http.Client) (*OpenAIClient, error) {
	base := DefaultBaseURL
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", base)
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &OpenAIClient{baseURL: base, client: client}, nil
}

func (o *OpenAIClient) Complete(ctx context.Context, prompt Prompt, credential string) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(credential),
		option.WithBaseURL(o.baseURL),
		option.WithHTTPClient(o.client),
		option.WithMaxRetries(0),
	)

	var httpResp *http.Response
	resp, err := client.Chat.Completions.New(ctx, chatParams(prompt), option.WithResponseInto(&httpResp))
	if err != nil {
		return "", completionError(err, httpResp)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &EmptyCompletionError{}
	}
	return resp.Choices[0].Message.Content, nil
}

func chatParams(prompt Prompt) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
	}
}

// completionError maps SDK failures onto UpstreamError / EmptyCompletionError.
// Transport failures are returned untouched so callers see the root cause.
func completionError(err error, resp *http.Response) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = FailedToImproveText
		}
		return &UpstreamError{StatusCode: apiErr.StatusCode, Message: msg}
	}
	if resp == nil {
		return err
	}

	// error body the SDK could not read as an API error
	if resp.StatusCode >= http.StatusBadRequest {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: FailedToImproveText}
	}

	// 2xx whose body is not a completion
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || !isJSON(resp) {
		return &EmptyCompletionError{}
	}
	return err
}

func isJSON(resp *http.Response) bool {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return strings.Contains(mediaType, "application/json") || strings.HasSuffix(mediaType, "+json")
}
