package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/ameg/ameg-charts-go/internal/domain/repository"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedConfig, fileExtension)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return &config, nil
}

func validate(config *types.Config) error {
	if config.BaseURL != "" {
		if err := ValidateBaseURL(config.BaseURL); err != nil {
			return err
		}
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %d", config.Timeout)
	}
	if config.BannerTTL < 0 {
		return fmt.Errorf("banner_ttl must not be negative: %d", config.BannerTTL)
	}
	if config.Interval < 0 {
		return fmt.Errorf("notification_interval must not be negative: %d", config.Interval)
	}
	return nil
}

// ValidateBaseURL aceita apenas URLs http(s) absolutas.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", types.ErrInvalidBaseURL, raw)
	}
	return nil
}
