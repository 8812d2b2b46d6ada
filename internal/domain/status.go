package domain

import "time"

const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Script names tracked in the status table.
const (
	ScriptCollector = "collector"
	ScriptAnalyzer  = "analyzer"
)

// ServiceStatus tracks the health of a background service.
type ServiceStatus struct {
	ScriptName string     `json:"script_name"`
	LastRun    *time.Time `json:"last_run"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	NextRun    *time.Time `json:"next_run"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
