package llm

import "time"

// Error message templates
const (
	errOpenAIChatCompletion  = "openai chat completion: %w"
	errAnthropicMessages     = "anthropic messages: %w"
	errGoogleGenAICompletion = "google genai completion: %w"
	errOpenRouterRequest     = "openrouter request: %w"
)

// Error format strings for API clients
const (
	errFmtMarshalRequest = "marshal request: %w"
	errFmtCreateRequest  = "create request: %w"
	errFmtReadResponse   = "read response: %w"
	errFmtDecodeResponse = "decode response: %w"
	errFmtAPIWithMessage = "%w (%d): %s"
	errFmtAPIStatusOnly  = "%w: status %d"
)

// HTTP header values
const (
	contentTypeJSON     = "application/json"
	contentTypeText     = "text"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
)

// Log key strings
const (
	logKeyTask         = "task"
	logKeyModel        = "model"
	logKeyProvider     = "provider"
	logKeyMaxTokens    = "max_tokens"
	logKeyOutputTokens = "output_tokens"
	logKeyDuration     = "duration"
)

// Log message strings
const (
	logMsgTruncated   = "LLM output truncated due to max_tokens limit"
	logMsgInvokeError = "LLM invocation failed"
	logMsgInvoked     = "LLM invocation completed"
)

// DefaultTimeout bounds a single provider round trip when none is configured.
const DefaultTimeout = 90 * time.Second

// Cost conversion
const (
	usdToMillicents = 100000.0 // 1 USD = 100,000 millicents
)

// Request status for metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
