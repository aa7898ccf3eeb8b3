package model

import (
	"time"

	"github.com/sells-group/asselect/internal/openair"
)

// RunStatus is the outcome of a conversion.
type RunStatus string

const (
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one conversion.
type Run struct {
	ID         string    `json:"id"`
	Profile    string    `json:"profile,omitempty"`
	Source     string    `json:"source"`
	AIRAC      string    `json:"airac,omitempty"`
	Format     string    `json:"format"`
	Status     RunStatus `json:"status"`
	Volumes    int       `json:"volumes"`
	Excluded   int       `json:"excluded"`
	Obstacles  int       `json:"obstacles"`
	Bytes      int       `json:"bytes"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Complete fills in the counts from a successful conversion.
func (r *Run) Complete(out *openair.Output, d time.Duration) {
	r.Status = RunStatusComplete
	r.Volumes = out.Volumes
	r.Excluded = out.Excluded
	r.Obstacles = out.Obstacles
	r.Bytes = len(out.Text)
	r.DurationMS = d.Milliseconds()
	r.Error = ""
}

// Fail marks the run as failed with err.
func (r *Run) Fail(err error, d time.Duration) {
	r.Status = RunStatusFailed
	r.DurationMS = d.Milliseconds()
	if err != nil {
		r.Error = err.Error()
	}
}
