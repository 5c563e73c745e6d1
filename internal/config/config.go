package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SYMSYNC_CONCURRENCY.
const EnvPrefix = "SYMSYNC"

// NTSymbolPathEnv is consulted when no symbol path is configured.
const NTSymbolPathEnv = "_NT_SYMBOL_PATH"

// Config represents the entire application configuration
type Config struct {
	SymbolPath     string        `mapstructure:"symbol_path"`
	Concurrency    int           `mapstructure:"concurrency"`
	Includes       []string      `mapstructure:"include"`
	Excludes       []string      `mapstructure:"exclude"`
	Quiet          bool          `mapstructure:"quiet"`
	NoProgress     bool          `mapstructure:"no_progress"`
	Strict         bool          `mapstructure:"strict"`
	ResultJSONFile string        `mapstructure:"result_json_file"`
	HTTP           HTTPConfig    `mapstructure:"http"`
	AWS            AWSConfig     `mapstructure:"aws"`
	Logging        LoggingConfig `mapstructure:"logging"`
}

// HTTPConfig contains settings for HTTP symbol servers
type HTTPConfig struct {
	UserAgent string `mapstructure:"user_agent"`
}

// AWSConfig contains settings for s3:// symbol stores
type AWSConfig struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("symbol_path", "")
	v.SetDefault("concurrency", 64)
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("quiet", false)
	v.SetDefault("no_progress", false)
	v.SetDefault("strict", false)
	v.SetDefault("result_json_file", "")
	v.SetDefault("http.user_agent", "Microsoft-Symbol-Server/10.0.0.0")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configuration from defaults, an optional YAML file, SYMSYNC_*
// environment variables and whatever flags were bound to v, in increasing
// order of precedence.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.SymbolPath == "" {
		cfg.SymbolPath = os.Getenv(NTSymbolPathEnv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SymbolPath == "" {
		return fmt.Errorf("symbol path is required (--symbol-path, %s_SYMBOL_PATH or %s)", EnvPrefix, NTSymbolPathEnv)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
