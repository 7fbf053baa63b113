package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type NovaLiteConfig struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Shell struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
		HistoryMax  int    `mapstructure:"history_max"`
	} `mapstructure:"shell"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novalite")
	v.SetDefault("log.level", "warn")
	v.SetDefault("shell.prompt", "novalite> ")
	v.SetDefault("shell.history_file", "")
	v.SetDefault("shell.history_max", 2000)
}

// LoadConfig reads the YAML file at path on top of the defaults. An empty
// path skips the file. NOVALITE_* environment variables override both,
// e.g. NOVALITE_LOG_LEVEL=debug.
func LoadConfig(path string) (*NovaLiteConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NOVALITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaLiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LogLevel parses Log.Level; unknown values fall back to warn.
func (c *NovaLiteConfig) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
