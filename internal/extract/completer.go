package extract

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Default completion client configuration.
const (
	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-20241022"
	defaultTimeout          = 30 * time.Second
)

// Rate limiter defaults: 50 requests per minute for both APIs.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// ErrUnavailable is returned by a completer that has no usable credential.
var ErrUnavailable = errors.New("completion service unavailable")

// CompletionRequest is one request to the external text-completion
// service. Budgets come from the task table, not from the client.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer issues single blocking completion requests. Implementations
// never retry: a failed or timed-out request surfaces as one error and
// the caller moves on.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Available reports whether the completer is configured with a
	// usable credential. The engine skips the network entirely when
	// this is false.
	Available() bool
}

// CompleterConfig configures a completion client. The credential is
// passed explicitly; clients never read process state themselves.
type CompleterConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewCompleter builds a completer for the configured provider. A missing
// API key or a disabled provider yields the unavailable completer rather
// than an error, so pipeline construction always succeeds and the run
// degrades to empty extraction results.
func NewCompleter(cfg CompleterConfig) Completer {
	if cfg.APIKey == "" {
		return unavailableCompleter{}
	}
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicCompleter(cfg)
	case "openai":
		return newOpenAICompleter(cfg)
	default:
		return unavailableCompleter{}
	}
}

// unavailableCompleter is the degraded mode: every request immediately
// fails with ErrUnavailable and no network is touched.
type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, CompletionRequest) (string, error) {
	return "", ErrUnavailable
}

func (unavailableCompleter) Available() bool { return false }

// secretPatterns cover credentials that internal meeting notes and docs
// commonly leak; matched spans are redacted before content leaves the
// process.
var secretPatterns = []struct {
	regex       *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-]{20,}`), "[REDACTED:ANTHROPIC_KEY]"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "[REDACTED:OPENAI_KEY]"},
	{regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_\-.=]{20,}`), "[REDACTED:BEARER_TOKEN]"},
	{regexp.MustCompile(`(?i)(api[_-]?key|apikey|token|password)\s*[:=]\s*["']?([^"'\s]{8,})["']?`), "$1=[REDACTED]"},
}

// scrubSecrets redacts credential-shaped substrings from prompt content.
func scrubSecrets(content string) string {
	for _, p := range secretPatterns {
		content = p.regex.ReplaceAllString(content, p.replacement)
	}
	return content
}

var _ Completer = unavailableCompleter{}
