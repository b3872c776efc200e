package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./wayfinders/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	return LoadAppConfigBytes(data)
}

// LoadAppConfigBytes parses and validates configuration from raw YAML.
func LoadAppConfigBytes(data []byte) error {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Routing); err != nil {
		return err
	}
	if err := v.Struct(cfg.Explain); err != nil {
		return err
	}
	Config = cfg
	applyEnvOverrides()
	return nil
}

// applyEnvOverrides fills API keys from the environment when the file leaves
// them blank. Keys in the file win.
func applyEnvOverrides() {
	if Config.Routing.APIKey == "" {
		Config.Routing.APIKey = os.Getenv("ORS_API_KEY")
	}
	if Config.Routing.BaseURL == "" {
		Config.Routing.BaseURL = os.Getenv("ORS_BASE_URL")
	}
	if Config.Explain.APIKey == "" {
		Config.Explain.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}
