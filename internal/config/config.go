package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Drivers lists the database/sql driver names the dataset package registers.
var Drivers = []string{"sqlserver", "mysql", "sqlite"}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Output   OutputConfig   `mapstructure:"output"`
	App      AppConfig      `mapstructure:"app"`
	Queries  []string       `mapstructure:"queries"` // replaces the built-in catalog when set
}

type DatabaseConfig struct {
	Driver         string  `mapstructure:"driver"`
	DSN            string  `mapstructure:"dsn"`
	ConnectTimeout int     `mapstructure:"connect_timeout"` // seconds
	QueryTimeout   int     `mapstructure:"query_timeout"`   // seconds, 0 = no limit
	MaxRetries     int     `mapstructure:"max_retries"`     // connection attempts after the first
	QueryRate      float64 `mapstructure:"query_rate"`      // queries per second, 0 = unlimited
}

type OutputConfig struct {
	Dir      string  `mapstructure:"dir"`
	DPI      float64 `mapstructure:"dpi"`
	FontPath string  `mapstructure:"font_path"`
}

type AppConfig struct {
	LogsDir string `mapstructure:"logs_dir"`
}

func (c DatabaseConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Second
}

func (c DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(c.QueryTimeout) * time.Second
}

// Load builds the configuration from, in increasing priority:
// 1. defaults
// 2. config.yaml in the working directory
// 3. .env and the process environment
// 4. command-line flags registered with RegisterFlags
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env values land in the process environment and are picked up by the env bindings below
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// QUERIES from the environment arrives as a single string; split on ';' since SQL
	// routinely contains commas.
	if raw, ok := v.Get("queries").(string); ok {
		config.Queries = splitQueries(raw)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.dsn", "DB_DSN")
	v.BindEnv("database.connect_timeout", "DB_CONNECT_TIMEOUT")
	v.BindEnv("database.query_timeout", "DB_QUERY_TIMEOUT")
	v.BindEnv("database.max_retries", "DB_MAX_RETRIES")
	v.BindEnv("database.query_rate", "DB_QUERY_RATE")

	v.BindEnv("output.dir", "OUTPUT_DIR")
	v.BindEnv("output.dpi", "OUTPUT_DPI")
	v.BindEnv("output.font_path", "OUTPUT_FONT_PATH")

	v.BindEnv("app.logs_dir", "LOGS_DIR")
	v.BindEnv("queries", "QUERIES")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlserver")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.connect_timeout", 30)
	v.SetDefault("database.query_timeout", 0)
	v.SetDefault("database.max_retries", 0)
	v.SetDefault("database.query_rate", 0.0)

	v.SetDefault("output.dir", "Visualisation")
	v.SetDefault("output.dpi", 100.0)
	v.SetDefault("output.font_path", "")

	v.SetDefault("app.logs_dir", "logs")
	v.SetDefault("queries", []string{})
}

// RegisterFlags adds one flag per config key to fs. Flag names match the viper keys so
// BindPFlags maps them without aliases.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("database.driver", "sqlserver", "Database driver: sqlserver, mysql or sqlite (env: DB_DRIVER)")
	fs.String("database.dsn", "", "Database connection string (env: DB_DSN)")
	fs.Int("database.connect_timeout", 30, "Connection timeout in seconds (env: DB_CONNECT_TIMEOUT)")
	fs.Int("database.query_timeout", 0, "Per-query timeout in seconds, 0 disables it (env: DB_QUERY_TIMEOUT)")
	fs.Int("database.max_retries", 0, "Extra connection attempts on transient failures (env: DB_MAX_RETRIES)")
	fs.Float64("database.query_rate", 0, "Maximum queries per second, 0 disables pacing (env: DB_QUERY_RATE)")

	fs.String("output.dir", "Visualisation", "Directory for the generated charts (env: OUTPUT_DIR)")
	fs.Float64("output.dpi", 100, "Pixels per inch of the generated charts (env: OUTPUT_DPI)")
	fs.String("output.font_path", "", "TrueType font for chart text, embedded Go font when empty (env: OUTPUT_FONT_PATH)")

	fs.String("app.logs_dir", "logs", "Directory for app.log (env: LOGS_DIR)")
}

// MaxQueries is the number of chart recipes; query i is always drawn with recipe i.
const MaxQueries = 10

func Validate(cfg *Config) error {
	if !knownDriver(cfg.Database.Driver) {
		return fmt.Errorf("unknown database.driver %q, expected one of %s", cfg.Database.Driver, strings.Join(Drivers, ", "))
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Database.ConnectTimeout < 0 || cfg.Database.QueryTimeout < 0 {
		return fmt.Errorf("database timeouts must not be negative")
	}
	if cfg.Database.QueryRate < 0 {
		return fmt.Errorf("database.query_rate must not be negative")
	}
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if len(cfg.Queries) > MaxQueries {
		return fmt.Errorf("at most %d queries can be configured, got %d", MaxQueries, len(cfg.Queries))
	}
	if cfg.Output.DPI <= 0 {
		return fmt.Errorf("output.dpi must be positive, got %v", cfg.Output.DPI)
	}
	return nil
}

func knownDriver(name string) bool {
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}

func splitQueries(raw string) []string {
	var out []string
	for _, q := range strings.Split(raw, ";") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
