package llm

import (
	"fmt"
	"os"
)

// Options selects and decorates a provider from configuration.
type Options struct {
	Provider       string // "openai" or "ollama"
	Model          string
	OllamaHost     string
	RequestsPerMin int  // 0 disables rate limiting
	CircuitBreaker bool // wrap with the default breaker
}

// NewProvider builds the configured provider stack. Decorators wrap
// inside-out: breaker first, rate limiter outermost, so a rejected call
// never burns a rate-limit token.
func NewProvider(opts Options) (Provider, error) {
	var p Provider

	switch opts.Provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		p = NewOpenAIProvider(apiKey, opts.Model)

	case "ollama":
		host := opts.OllamaHost
		if host == "" {
			host = "http://localhost:11434"
		}
		p = NewOllamaProvider(host, opts.Model)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", opts.Provider)
	}

	if opts.CircuitBreaker {
		p = NewBreakerProvider(p, DefaultBreakerConfig())
	}
	if opts.RequestsPerMin > 0 {
		p = NewRateLimitedProvider(p, opts.RequestsPerMin)
	}
	return p, nil
}
