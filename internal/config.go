package internal

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Kestrel configuration
type Config struct {
	// Output is the path the final snapshot is written to; empty means stdout
	Output string `mapstructure:"output"`

	// NATS configuration for optional outcome publishing
	NATS struct {
		URL     string `mapstructure:"url"`     // Server URL; empty disables publishing
		Subject string `mapstructure:"subject"` // Subject outcomes are published on
	} `mapstructure:"nats"`

	// Audit configuration for the optional rejection store
	Audit struct {
		Path string `mapstructure:"path"` // Path to SQLite audit database; empty disables auditing
	} `mapstructure:"audit"`

	// LogDir is the directory run logs are written into
	LogDir string `mapstructure:"log_dir"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// LoadConfig loads the configuration from file, environment and defaults
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaultConfig(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Look for config in the current directory and in /etc/kestrel/
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/kestrel/")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Override with environment variables prefixed with KESTREL_
	v.SetEnvPrefix("KESTREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaultConfig sets default configuration values
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("nats.subject", "kestrel.outcomes")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("debug", false)
}
