package config

// defaultModels maps each provider to the model the assistant starts with.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

// DefaultModel returns the starting model for the given provider.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             DefaultModel(ProviderOpenAI),
		OllamaHost:        "http://localhost:11434",
		RequestsPerMinute: 60,
		CircuitBreaker:    true,
		MaxTokens:         1024,
		Temperature:       0.3,
		Port:              8080,
		DatabasePath:      "obraflow.db",
	}
}
