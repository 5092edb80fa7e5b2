package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Paths
	DataDir    string
	LedgerPath string

	// Query URLs
	Timeframe    string
	Anchor       string
	HostLanguage string
	ChunkSize    int

	// Link opening
	BatchSize  int
	BrowserURL string

	// Logging from the environment
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. TRENDKIT_* environment variables
//  3. .env and .env.local
//  4. Config file (explicit path, or .trendkit.yaml in the working or home directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		v.SetConfigName(constants.DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot parse config file", err)
			}
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		DataDir:    v.GetString("data_dir"),
		LedgerPath: v.GetString("ledger"),

		Timeframe:    v.GetString("query.timeframe"),
		Anchor:       v.GetString("query.anchor"),
		HostLanguage: v.GetString("query.hl"),
		ChunkSize:    v.GetInt("query.chunk_size"),

		BatchSize:  v.GetInt("open.batch_size"),
		BrowserURL: v.GetString("open.browser_url"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.ChunkSize <= 0 {
		return nil, errors.NewConfigError("query.chunk_size", "must be positive", nil)
	}
	if config.BatchSize <= 0 {
		return nil, errors.NewConfigError("open.batch_size", "must be positive", nil)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("ledger", "")
	v.SetDefault("query.timeframe", constants.DefaultTimeframe)
	v.SetDefault("query.anchor", constants.DefaultAnchorTopic)
	v.SetDefault("query.hl", constants.DefaultHostLanguage)
	v.SetDefault("query.chunk_size", constants.DefaultChunkSize)
	v.SetDefault("open.batch_size", constants.DefaultBatchSize)
	v.SetDefault("open.browser_url", "")
}

// UpdateFromFlags applies parsed global flags on top of the loaded values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// loadEnvFiles loads .env then .env.local; neither overrides variables
// already set in the environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
