package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const numberUpFile = "numberup.yaml"

// LoadNumberUp loads NumberUp configuration.
// Search order: customPath -> ~/.arcade/configs/numberup.yaml -> ./configs/numberup.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. The result is validated.
func LoadNumberUp(customPath string) (NumberUpConfig, error) {
	cfg, err := loadNumberUp(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", describe(customPath), err)
	}
	return cfg, nil
}

func loadNumberUp(customPath string) (NumberUpConfig, error) {
	cfg := DefaultNumberUpConfig()

	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(numberUpFile), filepath.Join("configs", numberUpFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultNumberUpConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultNumberUpYAML, &cfg); err != nil {
		return DefaultNumberUpConfig(), nil
	}
	return cfg, nil
}

func describe(path string) string {
	if path == "" {
		return "(search path)"
	}
	return path
}

// userConfigPath returns ~/.arcade/configs/<filename>, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
