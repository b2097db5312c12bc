package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the terrareview configuration. The same values drive
// both the Lambda deployment and the local CLI.
type Config struct {
	Model         string `json:"model"`
	SecretName    string `json:"secretName"`
	SecretKey     string `json:"secretKey"`
	Region        string `json:"region"`
	Policy        string `json:"policy"`
	Format        string `json:"format"`
	RedactSecrets bool   `json:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:         "gemini-2.5-flash",
		SecretName:    "gemini-api-key",
		SecretKey:     "GEMINI_API_KEY",
		Region:        "us-east-1",
		Policy:        "alb-tls",
		Format:        "text",
		RedactSecrets: true,
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "terrareview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "terrareview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "terrareview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "terrareview"), nil
	default:
		return filepath.Join(home, ".config", "terrareview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileConfig mirrors Config for the file layer. The bool is a pointer so an
// absent redactSecrets key can be told apart from an explicit false; the
// shallower field wins during unmarshaling.
type fileConfig struct {
	Config
	RedactSecrets *bool `json:"redactSecrets"`
}

func loadFileConfig() (fileConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return fileConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	return fc, nil
}

// LoadFile loads the file-layer config merged over defaults. Returns the
// defaults unchanged if the file doesn't exist.
func LoadFile() (Config, error) {
	fc, err := loadFileConfig()
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	mergeFile(&cfg, fc)
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := loadFileConfig()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.SecretName != "" {
		dst.SecretName = src.SecretName
	}
	if src.SecretKey != "" {
		dst.SecretKey = src.SecretKey
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
	if src.Policy != "" {
		dst.Policy = src.Policy
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.RedactSecrets != nil {
		dst.RedactSecrets = *src.RedactSecrets
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("TERRAREVIEW_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TERRAREVIEW_SECRET_NAME"); v != "" {
		cfg.SecretName = v
	}
	if v := os.Getenv("TERRAREVIEW_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("TERRAREVIEW_REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv("TERRAREVIEW_POLICY"); v != "" {
		cfg.Policy = v
	}
	if v := os.Getenv("TERRAREVIEW_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("TERRAREVIEW_REDACT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RedactSecrets = b
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["policy"]; ok && v != "" {
		cfg.Policy = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["region"]; ok && v != "" {
		cfg.Region = v
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "secretName":
		cfg.SecretName = value
	case "secretKey":
		cfg.SecretKey = value
	case "region":
		cfg.Region = value
	case "policy":
		cfg.Policy = value
	case "format":
		cfg.Format = value
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be a boolean: %w", err)
		}
		cfg.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
