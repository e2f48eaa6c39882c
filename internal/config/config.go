package config

import (
	"time"
)

// Config is the root configuration of the curation worker.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Planner  PlannerConfig  `yaml:"planner"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Worker   WorkerConfig   `yaml:"worker"`
	LLM      LLMConfig      `yaml:"llm"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PlannerConfig holds gap-analysis targets and lease settings.
type PlannerConfig struct {
	MeaningsPerLevel     int           `yaml:"meanings_per_level"     env:"PLANNER_MEANINGS_PER_LEVEL"     env-default:"100"`
	UtterancesPerMeaning int           `yaml:"utterances_per_meaning" env:"PLANNER_UTTERANCES_PER_MEANING" env-default:"3"`
	GrammarPerLevel      int           `yaml:"grammar_per_level"      env:"PLANNER_GRAMMAR_PER_LEVEL"      env-default:"30"`
	ExercisesPerLevel    int           `yaml:"exercises_per_level"    env:"PLANNER_EXERCISES_PER_LEVEL"    env-default:"50"`
	LeaseTTL             time.Duration `yaml:"lease_ttl"              env:"PLANNER_LEASE_TTL"              env-default:"1h"`
}

// PipelineConfig holds lifecycle orchestration settings.
type PipelineConfig struct {
	RetryAttempts int  `yaml:"retry_attempts" env:"PIPELINE_RETRY_ATTEMPTS" env-default:"3"`
	BatchSize     int  `yaml:"batch_size"     env:"PIPELINE_BATCH_SIZE"     env-default:"20"`
	AutoApprove   bool `yaml:"auto_approve"   env:"PIPELINE_AUTO_APPROVE"   env-default:"false"`
}

// WorkerConfig holds the batch-driver loop settings.
type WorkerConfig struct {
	Interval            time.Duration `yaml:"interval"             env:"WORKER_INTERVAL"             env-default:"30s"`
	Concurrency         int           `yaml:"concurrency"          env:"WORKER_CONCURRENCY"          env-default:"4"`
	CheckpointName      string        `yaml:"checkpoint_name"      env:"WORKER_CHECKPOINT_NAME"      env-default:"curator"`
	CheckpointThreshold time.Duration `yaml:"checkpoint_threshold" env:"WORKER_CHECKPOINT_THRESHOLD" env-default:"5m"`
}

// LLMConfig holds generation backend settings.
type LLMConfig struct {
	// Provider selects the backend: "anthropic" or "openai".
	// Empty disables the LLM adapter (rule-based generation only).
	Provider    string  `yaml:"provider"    env:"LLM_PROVIDER"`
	Model       string  `yaml:"model"       env:"LLM_MODEL"`
	APIKey      string  `yaml:"api_key"     env:"LLM_API_KEY"`
	MaxTokens   int     `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"  env-default:"2048"`
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.2"`
}
