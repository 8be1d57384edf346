package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix          = "BOXXIT"
	defaultLogLevel    = "info"
	defaultUserName    = "Alex Johnson"
	defaultUserEmail   = "alex@example.com"
	defaultHistoryFile = ".boxxit_history"
)

// AppConfig captures runtime configuration for the interactive shell.
type AppConfig struct {
	LogLevel    string
	UserName    string
	UserEmail   string
	HistoryFile string
	Demo        bool
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("user.name", defaultUserName)
	configViper.SetDefault("user.email", defaultUserEmail)
	configViper.SetDefault("history.file", defaultHistoryFile)
	configViper.SetDefault("seed.demo", true)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		LogLevel:    configViper.GetString("log.level"),
		UserName:    configViper.GetString("user.name"),
		UserEmail:   configViper.GetString("user.email"),
		HistoryFile: configViper.GetString("history.file"),
		Demo:        configViper.GetBool("seed.demo"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.UserName) == "" {
		return fmt.Errorf("user.name is required")
	}
	if strings.TrimSpace(c.UserEmail) == "" {
		return fmt.Errorf("user.email is required")
	}
	return nil
}
