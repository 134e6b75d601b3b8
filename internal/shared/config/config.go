package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"bigbang-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

const (
	RandomModeSeeded  = "seeded"
	RandomModeEntropy = "entropy"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	Version      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type FrontendConfig struct {
	URLs      []string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type SimulationConfig struct {
	MaxParticleCount int
	Timeout          time.Duration
	EnableCaching    bool
	EnableLogging    bool
	CacheTTL         time.Duration
	RandomMode       string
	ConstantJitter   float64
	SimulatorType    string
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return err
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Simulation: loadSimulationConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "310"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		Version:      utils.GetEnv("SERVER_VERSION", "1.0.0"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Enabled:         utils.GetEnv("DB_ENABLED", "false") == "true",
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "bigbang"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:  utils.GetEnv("REDIS_ENABLED", "false") == "true",
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: utils.GetEnv("JWT_SECRET", ""),
	}
}

func loadFrontendConfig() FrontendConfig {
	var urls []string
	for _, u := range strings.Split(utils.GetEnv("FRONTEND_URL", "http://localhost:5173,http://localhost:3000"), ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}

	return FrontendConfig{
		URLs:      urls,
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: environment == "production",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "20"))

	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadSimulationConfig() SimulationConfig {
	maxParticles, _ := strconv.Atoi(utils.GetEnv("SIMULATION_MAX_PARTICLE_COUNT", "10000"))
	timeout, _ := strconv.Atoi(utils.GetEnv("SIMULATION_TIMEOUT_SECONDS", "300"))
	cacheTTL, _ := strconv.Atoi(utils.GetEnv("SIMULATION_CACHE_TTL_MINUTES", "30"))
	jitter, err := strconv.ParseFloat(utils.GetEnv("SIMULATION_CONSTANT_JITTER", "1e-4"), 64)
	if err != nil {
		jitter = -1
	}

	return SimulationConfig{
		MaxParticleCount: maxParticles,
		Timeout:          time.Duration(timeout) * time.Second,
		EnableCaching:    utils.GetEnv("SIMULATION_ENABLE_CACHING", "true") == "true",
		EnableLogging:    utils.GetEnv("SIMULATION_ENABLE_LOGGING", "true") == "true",
		CacheTTL:         time.Duration(cacheTTL) * time.Minute,
		RandomMode:       utils.GetEnv("SIMULATION_RANDOM_MODE", RandomModeSeeded),
		ConstantJitter:   jitter,
		SimulatorType:    utils.GetEnv("SIMULATION_SIMULATOR_TYPE", "LocalSimulator"),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Enabled && c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required when the database is enabled")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstSize <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS_PER_SECOND and RATE_LIMIT_BURST_SIZE")
	}

	sim := c.Simulation
	if sim.MaxParticleCount <= 0 {
		return fmt.Errorf("SIMULATION_MAX_PARTICLE_COUNT must be positive")
	}
	if sim.Timeout <= 0 {
		return fmt.Errorf("SIMULATION_TIMEOUT_SECONDS must be positive")
	}
	if sim.CacheTTL <= 0 {
		return fmt.Errorf("SIMULATION_CACHE_TTL_MINUTES must be positive")
	}
	if sim.RandomMode != RandomModeSeeded && sim.RandomMode != RandomModeEntropy {
		return fmt.Errorf("SIMULATION_RANDOM_MODE must be %q or %q, got %q", RandomModeSeeded, RandomModeEntropy, sim.RandomMode)
	}
	if !(sim.ConstantJitter >= 0) || math.IsInf(sim.ConstantJitter, 1) {
		return fmt.Errorf("SIMULATION_CONSTANT_JITTER must be a finite non-negative number")
	}

	return nil
}

// OperatorEndpointsEnabled reports whether token-guarded endpoints are served.
func (c *Config) OperatorEndpointsEnabled() bool {
	return c.Auth.JWTSecret != ""
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
