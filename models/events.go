package models

import "time"

const (
	EventSeedCompleted = "seed.completed"
	EventETLCompleted  = "etl.completed"
)

// SeedCompletedEvent is published once a seed run has persisted everything.
type SeedCompletedEvent struct {
	EventType string    `json:"event_type"`
	RunID     string    `json:"run_id"`
	Users     int       `json:"users"`
	Products  int       `json:"products"`
	Orders    int       `json:"orders"`
	Revenue   float64   `json:"revenue"`
	Timestamp time.Time `json:"timestamp"`
}

// ETLCompletedEvent is published after the warehouse has been rebuilt.
type ETLCompletedEvent struct {
	EventType string           `json:"event_type"`
	RunID     string           `json:"run_id"`
	Rows      map[string]int64 `json:"rows"`
	ExportDir string           `json:"export_dir,omitempty"`
	Uploaded  int              `json:"uploaded"`
	Timestamp time.Time        `json:"timestamp"`
}
