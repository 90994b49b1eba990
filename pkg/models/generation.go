package models

import (
	"github.com/google/uuid"
)

// GenerationStrategy names the mechanism that produced a file.
type GenerationStrategy string

const (
	StrategySchema   GenerationStrategy = "schema"
	StrategyTemplate GenerationStrategy = "template"
)

// Phases accepted by the orchestrator's combined entry point.
const (
	PhaseConfig = "config"
	PhaseCode   = "code"
	PhaseAll    = "all"
)

// GenerationTarget is one file produced for a table during a run.
type GenerationTarget struct {
	Table     string             `json:"table,omitempty"`
	ModelName string             `json:"model_name,omitempty"`
	Path      string             `json:"path"`
	Strategy  GenerationStrategy `json:"strategy"`
}

// GenerationReport lists what a run wrote, in write order.
type GenerationReport struct {
	RunID   uuid.UUID          `json:"run_id"`
	Phase   string             `json:"phase"`
	Tables  []string           `json:"tables,omitempty"`
	Targets []GenerationTarget `json:"targets"`
}
