package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level obraflow configuration, corresponding to .obraflow.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	OllamaHost        string       `yaml:"ollama_host" koanf:"ollama_host"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	CircuitBreaker    bool         `yaml:"circuit_breaker" koanf:"circuit_breaker"`
	MaxTokens         int          `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	Port              int          `yaml:"port" koanf:"port"`
	CORSAllowAll      bool         `yaml:"cors_allow_all" koanf:"cors_allow_all"`
	DatabasePath      string       `yaml:"database_path" koanf:"database_path"`
	SystemPrompt      string       `yaml:"system_prompt" koanf:"system_prompt"`
}
