package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .obraflow.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Bienvenido a ObraFlow. Configuremos tu asistente.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Proveedor de LLM",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Modelo",
		Default: DefaultModel(provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model

	// 3. Ollama host, only when relevant.
	if provider == ProviderOllama {
		hostPrompt := promptui.Prompt{
			Label:   "Host de Ollama",
			Default: cfg.OllamaHost,
		}
		if cfg.OllamaHost, err = hostPrompt.Run(); err != nil {
			return nil, fmt.Errorf("ollama host: %w", err)
		}
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Puerto del servidor",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("puerto inválido")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 5. Database path.
	dbPrompt := promptui.Prompt{
		Label:   "Ruta de la base de datos",
		Default: cfg.DatabasePath,
	}
	if cfg.DatabasePath, err = dbPrompt.Run(); err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNota: definí %s en tu entorno antes de iniciar el servidor.\n", envVar)
	}

	configPath := ".obraflow.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguración guardada en %s\n", configPath)
	return cfg, nil
}
