package models

import "time"

type RunKind string

const (
	RunKindSeed RunKind = "seed"
	RunKindETL  RunKind = "etl"
)

// RunRecord is the ledger entry kept for every completed seed or ETL run.
type RunRecord struct {
	RunID      string           `dynamodbav:"run_id" json:"run_id"`
	Kind       RunKind          `dynamodbav:"kind" json:"kind"`
	FinishedAt time.Time        `dynamodbav:"finished_at" json:"finished_at"`
	DurationMS int64            `dynamodbav:"duration_ms" json:"duration_ms"`
	Counts     map[string]int64 `dynamodbav:"counts" json:"counts"`
	Revenue    float64          `dynamodbav:"revenue" json:"revenue"`
}
