package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Artifact names. Every trained version persists exactly one artifact per
// name.
const (
	EPModelName = "ep_model"
	WPModelName = "wp_model"
)

// ModelRecord is one row of the models ledger: validation metrics for a
// persisted artifact, keyed by (name, version). Re-training under the
// same version token upserts the row.
type ModelRecord struct {
	Name      string            `gorm:"column:name;primaryKey" json:"name"`
	Version   string            `gorm:"column:version;primaryKey" json:"version"`
	Metrics   datatypes.JSONMap `gorm:"column:metrics_json;type:jsonb" json:"metrics"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ModelRecord) TableName() string {
	return "models"
}

// RequestLog is the append-only telemetry row written for every served
// recommendation. Never read back on the decision path.
type RequestLog struct {
	TraceID        string            `gorm:"column:trace_id;primaryKey" json:"trace_id"`
	Params         datatypes.JSONMap `gorm:"column:params_json;type:jsonb" json:"params"`
	LatencyMS      float64           `gorm:"column:latency_ms" json:"latency_ms"`
	Recommendation string            `gorm:"column:rec" json:"rec"`
	DeltaWP        float64           `gorm:"column:delta_wp" json:"delta_wp"`
	CreatedAt      time.Time         `gorm:"column:ts;autoCreateTime" json:"ts"`
}

func (RequestLog) TableName() string {
	return "requests"
}
