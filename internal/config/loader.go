package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "chainreaction.yaml"

// LoadChainReaction loads Chain Reaction configuration.
// Search order: customPath -> ~/.chainreaction/configs/chainreaction.yaml -> ./configs/chainreaction.yaml -> embedded default
func LoadChainReaction(customPath string) (ChainReactionConfig, error) {
	// Fields missing from a file keep their defaults
	cfg := DefaultChainReactionConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := parse(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultChainReactionConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := parse(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultChainReactionConfig()
	}

	// Use embedded default YAML
	if err := parse(defaultChainReactionYAML, &cfg); err != nil {
		return DefaultChainReactionConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML into cfg and validates the result.
func parse(data []byte, cfg *ChainReactionConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chainreaction", "configs", filename)
}

// DataDir returns ~/.chainreaction, or the working directory if home is
// unavailable. The default database and log file live here.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".chainreaction")
}
