package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/refselect/pkg/constants"
	"github.com/agentstation/refselect/pkg/errors"
)

// EnvPrefix is prepended to every environment variable the CLI reads,
// e.g. REFSELECT_BASE_URL.
const EnvPrefix = "REFSELECT"

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// List service
	BaseURL     string
	ListPath    string
	APIToken    string
	AuthScheme  string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration

	// Control behaviour
	Language    string
	QuietPeriod time.Duration
	Unlabeled   string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. REFSELECT_* environment variables
//  3. .env files
//  4. Config file (configFile, or .refselect.yaml in $HOME or the working directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".refselect")
		// a missing default config file is fine
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:     v.GetString("base_url"),
		ListPath:    v.GetString("list_path"),
		APIToken:    v.GetString("api_token"),
		AuthScheme:  v.GetString("auth_scheme"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		CacheTTL:    v.GetDuration("cache_ttl"),

		Language:    v.GetString("language"),
		QuietPeriod: v.GetDuration("quiet_period"),
		Unlabeled:   v.GetString("unlabeled"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("list_path", constants.DefaultListPath)
	v.SetDefault("auth_scheme", "bearer")
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("language", constants.DefaultLanguage)
	v.SetDefault("quiet_period", constants.DefaultQuietPeriod)
	v.SetDefault("unlabeled", constants.DefaultUnlabeled)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over the config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden, so
// .env.local only fills what .env left unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
