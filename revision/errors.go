package revision

// 对外暴露的通用失败文案，以及诊断日志前缀。
const (
	FailedToImproveText = "Failed to improve text. Please check your API key and try again."
	ErrorImprovingText  = "Error improving text:"
)

// UpstreamError is returned when the completion API answers with a
// non-success status. Message is the API's own error message when the body
// carried one, otherwise FailedToImproveText.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// EmptyCompletionError is returned when a successful response carries no
// usable completion text.
type EmptyCompletionError struct{}

func (*EmptyCompletionError) Error() string {
	return FailedToImproveText
}
