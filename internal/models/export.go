package models

import "time"

// ExportJob is one batch export invocation: the source list, the target
// directory and a settings snapshot. It is created per invocation and carries
// no state between batches.
type ExportJob struct {
	ID        string            `json:"id"`
	Paths     []string          `json:"paths" binding:"required,min=1"`
	OutputDir string            `json:"output_dir" binding:"required"`
	Settings  WatermarkSettings `json:"settings"`
	Status    string            `json:"status,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
	Result    *ExportResult     `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ExportFailure identifies one skipped source file and why it was skipped.
type ExportFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ExportResult is the aggregate outcome of a batch. The batch always runs to
// completion; Succeeded counts written files and Failed lists the rest.
type ExportResult struct {
	Succeeded int             `json:"succeeded"`
	Failed    []ExportFailure `json:"failed,omitempty"`
	Outputs   []string        `json:"outputs,omitempty"`
}
