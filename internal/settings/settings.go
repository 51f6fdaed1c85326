// Package settings resolves process-level options from command-line flags,
// ROCKET_* environment variables and an optional settings.yaml, in that
// order of precedence.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so --log-file is
// read from ROCKET_LOG_FILE.
const EnvPrefix = "ROCKET"

// Settings are the resolved process options.
type Settings struct {
	FPS        int    `mapstructure:"fps"`
	Seed       int64  `mapstructure:"seed"`
	DB         string `mapstructure:"db"`
	Debug      bool   `mapstructure:"debug"`
	LogFile    string `mapstructure:"log-file"`
	Levels     string `mapstructure:"levels"`
	Config     string `mapstructure:"config"`
	Difficulty string `mapstructure:"difficulty"`
	Audio      bool   `mapstructure:"audio"`

	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	HostKey string `mapstructure:"host-key"`
}

// New creates a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("fps", 30)
	v.SetDefault("seed", 0)
	v.SetDefault("db", "~/.rocket/scores.db")
	v.SetDefault("debug", false)
	v.SetDefault("log-file", "")
	v.SetDefault("levels", "")
	v.SetDefault("config", "")
	v.SetDefault("difficulty", "")
	v.SetDefault("audio", true)

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 2222)
	v.SetDefault("host-key", ".ssh/rocket_ed25519")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags makes flags that were set on the command line win over the
// environment and the settings file.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("settings: bind flags: %w", err)
	}
	return nil
}

// ReadFile merges settings.yaml from dir. A missing file is not an error.
func ReadFile(v *viper.Viper, dir string) error {
	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("settings: error reading config file: %w", err)
	}
	return nil
}

// Decode returns the resolved settings.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("settings: decode: %w", err)
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("settings: fps must be positive, got %d", s.FPS)
	}
	return s, nil
}
