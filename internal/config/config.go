package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	API       APIConfig       `mapstructure:"api"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Playbooks PlaybooksConfig `mapstructure:"playbooks"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Schema          string        `mapstructure:"schema"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.Schema,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TLS       bool   `mapstructure:"tls"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	RequestsPerHour   int  `mapstructure:"requests_per_hour"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

type APIConfig struct {
	Key string `mapstructure:"key"`
}

// CatalogConfig configures the external control catalog collaborator.
type CatalogConfig struct {
	Path        string        `mapstructure:"path"`
	ProfileHref string        `mapstructure:"profile_href"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// PlaybooksConfig configures the playbook registry.
type PlaybooksConfig struct {
	ManifestPath string `mapstructure:"manifest_path"`
	BaseDir      string `mapstructure:"base_dir"`
}

// ExecutorConfig configures the external workflow executor collaborator.
type ExecutorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ArchiveConfig configures the object-storage report archive.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ScoringConfig holds the quantum risk scoring policy. The lookup tables are
// configuration so the scoring policy can be versioned and tested independently
// of code; unknown keys fall back to DefaultSubScore.
type ScoringConfig struct {
	Weights           ScoringWeights     `mapstructure:"weights"`
	AlgorithmRisk     map[string]float64 `mapstructure:"algorithm_risk"`
	DataSensitivity   map[string]float64 `mapstructure:"data_sensitivity"`
	SystemCriticality map[string]float64 `mapstructure:"system_criticality"`
	DefaultSubScore   float64            `mapstructure:"default_sub_score"`
}

type ScoringWeights struct {
	AlgorithmRisk     float64 `mapstructure:"algorithm_risk"`
	DataSensitivity   float64 `mapstructure:"data_sensitivity"`
	SystemCriticality float64 `mapstructure:"system_criticality"`
}

// DefaultScoringConfig returns the documented default scoring policy:
// weights 0.4/0.3/0.3, sub-scores on a 1-10 scale, midpoint 5 for unknown keys.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: ScoringWeights{
			AlgorithmRisk:     0.4,
			DataSensitivity:   0.3,
			SystemCriticality: 0.3,
		},
		AlgorithmRisk: map[string]float64{
			"RSA":     10,
			"ECC":     10,
			"DSA":     10,
			"AES-256": 3,
			"SHA-256": 2,
			"ML-KEM":  1,
			"ML-DSA":  1,
			"SLH-DSA": 1,
		},
		DataSensitivity: map[string]float64{
			"classified":   10,
			"confidential": 8,
			"internal":     5,
			"public":       1,
		},
		SystemCriticality: map[string]float64{
			"critical": 10,
			"high":     7,
			"medium":   4,
			"low":      1,
		},
		DefaultSubScore: 5,
	}
}

// WithDefaults fills in any unset scoring tables from the default policy.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	def := DefaultScoringConfig()
	if c.Weights.AlgorithmRisk == 0 && c.Weights.DataSensitivity == 0 && c.Weights.SystemCriticality == 0 {
		c.Weights = def.Weights
	}
	if len(c.AlgorithmRisk) == 0 {
		c.AlgorithmRisk = def.AlgorithmRisk
	}
	if len(c.DataSensitivity) == 0 {
		c.DataSensitivity = def.DataSensitivity
	}
	if len(c.SystemCriticality) == 0 {
		c.SystemCriticality = def.SystemCriticality
	}
	if c.DefaultSubScore == 0 {
		c.DefaultSubScore = def.DefaultSubScore
	}
	return c
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pqcguard")
	}

	// Environment variables
	v.SetEnvPrefix("PQCGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.host", "PQCGUARD_REDIS_HOST")
	v.BindEnv("redis.port", "PQCGUARD_REDIS_PORT")
	v.BindEnv("redis.password", "PQCGUARD_REDIS_PASSWORD")
	v.BindEnv("redis.tls", "PQCGUARD_REDIS_TLS")
	v.BindEnv("database.host", "PQCGUARD_DATABASE_HOST")
	v.BindEnv("database.port", "PQCGUARD_DATABASE_PORT")
	v.BindEnv("database.user", "PQCGUARD_DATABASE_USER")
	v.BindEnv("database.password", "PQCGUARD_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "PQCGUARD_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "PQCGUARD_DATABASE_SSLMODE")
	v.BindEnv("executor.base_url", "PQCGUARD_EXECUTOR_BASE_URL")
	v.BindEnv("executor.api_key", "PQCGUARD_EXECUTOR_API_KEY")
	v.BindEnv("archive.access_key", "PQCGUARD_ARCHIVE_ACCESS_KEY")
	v.BindEnv("archive.secret_key", "PQCGUARD_ARCHIVE_SECRET_KEY")
	v.BindEnv("app.environment", "PQCGUARD_APP_ENVIRONMENT")
	v.BindEnv("api.key", "PQCGUARD_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Scoring = cfg.Scoring.WithDefaults()

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}
