package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of completion task being performed.
type TaskType string

const (
	// TaskPlacement asks the model to place new microtasks into a day.
	TaskPlacement TaskType = "placement"
	// TaskHistoryPlacement is placement enriched with recorded task durations.
	TaskHistoryPlacement TaskType = "history_placement"
	// TaskReflow asks the model to reposition movable events after a change.
	TaskReflow TaskType = "reflow"
)

// TaskConfig holds per-task completion parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the completion subsystem.
type Config struct {
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. Retries default to
// zero: a failed reconciliation attempt surfaces to the caller rather than
// being silently re-asked.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskPlacement:        {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 15000},
			TaskHistoryPlacement: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 15000},
			TaskReflow:           {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads completion configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DAYWEAVE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAYWEAVE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("DAYWEAVE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYWEAVE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
