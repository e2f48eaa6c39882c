package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Planner.validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Worker.validate(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func (c *PlannerConfig) validate() error {
	if c.MeaningsPerLevel <= 0 {
		return fmt.Errorf("meanings_per_level must be > 0 (got %d)", c.MeaningsPerLevel)
	}
	if c.UtterancesPerMeaning <= 0 {
		return fmt.Errorf("utterances_per_meaning must be > 0 (got %d)", c.UtterancesPerMeaning)
	}
	if c.GrammarPerLevel <= 0 {
		return fmt.Errorf("grammar_per_level must be > 0 (got %d)", c.GrammarPerLevel)
	}
	if c.ExercisesPerLevel <= 0 {
		return fmt.Errorf("exercises_per_level must be > 0 (got %d)", c.ExercisesPerLevel)
	}
	if c.LeaseTTL <= 0 {
		return fmt.Errorf("lease_ttl must be > 0 (got %v)", c.LeaseTTL)
	}
	return nil
}

func (c *PipelineConfig) validate() error {
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be >= 1 (got %d)", c.RetryAttempts)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", c.BatchSize)
	}
	return nil
}

func (c *WorkerConfig) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %v)", c.Interval)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", c.Concurrency)
	}
	if c.CheckpointThreshold <= 0 {
		return fmt.Errorf("checkpoint_threshold must be > 0 (got %v)", c.CheckpointThreshold)
	}
	return nil
}

func (c *LLMConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "", "anthropic", "openai":
	default:
		return fmt.Errorf("provider must be one of: anthropic, openai (got %q)", c.Provider)
	}
	if c.Provider != "" && c.APIKey == "" {
		return fmt.Errorf("api_key is required when provider is set")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0,1] (got %v)", c.Temperature)
	}
	return nil
}
