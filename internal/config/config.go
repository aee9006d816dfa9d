// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for toolstatus.
type Config struct {
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	NATSURL    string `mapstructure:"nats_url" yaml:"nats_url"`
	Port       int    `mapstructure:"port" yaml:"port"`
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	Session    string `mapstructure:"session" yaml:"session"`
	PromptFile string `mapstructure:"prompt_file" yaml:"prompt_file"`
	Width      int    `mapstructure:"width" yaml:"width"`
}

// envKeys lists every key bound to a TOOLSTATUS_* variable.
var envKeys = []string{
	"log_level",
	"log_file",
	"nats_url",
	"port",
	"data_dir",
	"session",
	"prompt_file",
	"width",
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
// CLI flags are applied on top by the commands themselves.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("toolstatus")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("nats_url", "")
	v.SetDefault("port", -1) // embedded server without a listener
	v.SetDefault("data_dir", ".toolstatus")
	v.SetDefault("session", "default")
	v.SetDefault("prompt_file", "")
	v.SetDefault("width", 0)

	v.SetEnvPrefix("TOOLSTATUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "TOOLSTATUS_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/toolstatus/toolstatus.yml or
// $XDG_CONFIG_HOME/toolstatus/toolstatus.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "toolstatus", "toolstatus.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "toolstatus", "toolstatus.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "toolstatus.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
