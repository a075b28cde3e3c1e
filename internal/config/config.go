package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Scoring  ScoringConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// ScoringConfig carries every tunable of the matching engine. The composite
// weights must sum to 1.0; the technical multiplier and learning-hour rates
// are empirically chosen and deliberately overridable per deployment.
type ScoringConfig struct {
	AlgorithmVersion string

	JaccardWeight  float64
	CosineWeight   float64
	CoverageWeight float64

	MinComposite        float64
	TechnicalMultiplier float64
	IDFRefreshTTL       time.Duration

	TechnicalHoursPerUnit int
	SoftHoursPerUnit      int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     optBool("LOG_JSON", false),
		LogDebug:    optBool("LOG_DEBUG", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 168*time.Hour),
	}

	cfg.Scoring = loadScoring()

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadScoring() ScoringConfig {
	return ScoringConfig{
		AlgorithmVersion: optDefault("SCORE_ALGORITHM_VERSION", "composite-v1"),

		JaccardWeight:  optFloat("SCORE_JACCARD_WEIGHT", 0.4),
		CosineWeight:   optFloat("SCORE_COSINE_WEIGHT", 0.4),
		CoverageWeight: optFloat("SCORE_COVERAGE_WEIGHT", 0.2),

		MinComposite:        optFloat("MATCH_MIN_COMPOSITE", 0.05),
		TechnicalMultiplier: optFloat("SCORE_TECHNICAL_MULTIPLIER", 1.2),
		IDFRefreshTTL:       optDuration("IDF_REFRESH_TTL", 6*time.Hour),

		TechnicalHoursPerUnit: optInt("GAP_TECHNICAL_HOURS_PER_UNIT", 40),
		SoftHoursPerUnit:      optInt("GAP_SOFT_HOURS_PER_UNIT", 20),
	}
}

func (s ScoringConfig) Validate() error {
	if strings.TrimSpace(s.AlgorithmVersion) == "" {
		return errors.New("empty algorithm version")
	}
	if s.JaccardWeight < 0 || s.CosineWeight < 0 || s.CoverageWeight < 0 {
		return errors.New("composite weights must be non-negative")
	}
	sum := s.JaccardWeight + s.CosineWeight + s.CoverageWeight
	if sum < 1-1e-9 || sum > 1+1e-9 {
		return fmt.Errorf("composite weights must sum to 1.0, got %.6f", sum)
	}
	if s.MinComposite < 0 || s.MinComposite > 1 {
		return fmt.Errorf("match floor must be in [0,1], got %.6f", s.MinComposite)
	}
	if s.TechnicalMultiplier < 1 {
		return fmt.Errorf("technical multiplier must be >= 1, got %.6f", s.TechnicalMultiplier)
	}
	if s.TechnicalHoursPerUnit <= 0 || s.SoftHoursPerUnit <= 0 {
		return errors.New("learning-hour rates must be positive")
	}
	return nil
}

func optDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func optBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func optInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func optFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func optDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
