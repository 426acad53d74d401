package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Fitness   FitnessConfig
	Export    ExportConfig
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig exposes the genetic search tunables with documented defaults.
type SchedulerConfig struct {
	PopulationSize  int
	MaxGenerations  int
	StagnationLimit int
	MutationRate    float64
	CrossoverRate   float64
	EliteFraction   float64
	TournamentSize  int
	EvalWorkers     int
	RunTimeout      time.Duration
	ResultTTL       time.Duration
}

// FitnessConfig holds penalty and reward weights for candidate scoring.
type FitnessConfig struct {
	BaseScore          float64
	HardPenalty        float64
	UnavailablePenalty float64
	SpreadReward       float64
	ClusterPenalty     float64
	DailyLoadCap       int
	DailyLoadPenalty   float64
	ExcellentThreshold float64
	GoodThreshold      float64
}

// ExportConfig tunes timetable export rendering.
type ExportConfig struct {
	Title string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		PopulationSize:  v.GetInt("SCHEDULER_POPULATION_SIZE"),
		MaxGenerations:  v.GetInt("SCHEDULER_MAX_GENERATIONS"),
		StagnationLimit: v.GetInt("SCHEDULER_STAGNATION_LIMIT"),
		MutationRate:    v.GetFloat64("SCHEDULER_MUTATION_RATE"),
		CrossoverRate:   v.GetFloat64("SCHEDULER_CROSSOVER_RATE"),
		EliteFraction:   v.GetFloat64("SCHEDULER_ELITE_FRACTION"),
		TournamentSize:  v.GetInt("SCHEDULER_TOURNAMENT_SIZE"),
		EvalWorkers:     v.GetInt("SCHEDULER_EVAL_WORKERS"),
		RunTimeout:      parseDuration(v.GetString("SCHEDULER_RUN_TIMEOUT"), 30*time.Second),
		ResultTTL:       parseDuration(v.GetString("SCHEDULER_RESULT_TTL"), 30*time.Minute),
	}

	cfg.Fitness = FitnessConfig{
		BaseScore:          v.GetFloat64("FITNESS_BASE_SCORE"),
		HardPenalty:        v.GetFloat64("FITNESS_HARD_PENALTY"),
		UnavailablePenalty: v.GetFloat64("FITNESS_UNAVAILABLE_PENALTY"),
		SpreadReward:       v.GetFloat64("FITNESS_SPREAD_REWARD"),
		ClusterPenalty:     v.GetFloat64("FITNESS_CLUSTER_PENALTY"),
		DailyLoadCap:       v.GetInt("FITNESS_DAILY_LOAD_CAP"),
		DailyLoadPenalty:   v.GetFloat64("FITNESS_DAILY_LOAD_PENALTY"),
		ExcellentThreshold: v.GetFloat64("FITNESS_EXCELLENT_THRESHOLD"),
		GoodThreshold:      v.GetFloat64("FITNESS_GOOD_THRESHOLD"),
	}

	cfg.Export = ExportConfig{
		Title: v.GetString("EXPORT_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_POPULATION_SIZE", 100)
	v.SetDefault("SCHEDULER_MAX_GENERATIONS", 300)
	v.SetDefault("SCHEDULER_STAGNATION_LIMIT", 60)
	v.SetDefault("SCHEDULER_MUTATION_RATE", 0.15)
	v.SetDefault("SCHEDULER_CROSSOVER_RATE", 0.8)
	v.SetDefault("SCHEDULER_ELITE_FRACTION", 0.1)
	v.SetDefault("SCHEDULER_TOURNAMENT_SIZE", 5)
	v.SetDefault("SCHEDULER_EVAL_WORKERS", 0)
	v.SetDefault("SCHEDULER_RUN_TIMEOUT", "30s")
	v.SetDefault("SCHEDULER_RESULT_TTL", "30m")

	v.SetDefault("FITNESS_BASE_SCORE", 6000)
	v.SetDefault("FITNESS_HARD_PENALTY", 1000)
	v.SetDefault("FITNESS_UNAVAILABLE_PENALTY", 800)
	v.SetDefault("FITNESS_SPREAD_REWARD", 50)
	v.SetDefault("FITNESS_CLUSTER_PENALTY", 30)
	v.SetDefault("FITNESS_DAILY_LOAD_CAP", 6)
	v.SetDefault("FITNESS_DAILY_LOAD_PENALTY", 40)
	v.SetDefault("FITNESS_EXCELLENT_THRESHOLD", 5000)
	v.SetDefault("FITNESS_GOOD_THRESHOLD", 4000)

	v.SetDefault("EXPORT_TITLE", "Weekly Timetable")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
