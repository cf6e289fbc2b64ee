package train

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Metrics are the per-epoch values reported when tracking is enabled.
type Metrics struct {
	Epoch          int     `json:"epoch"`
	Loss           float32 `json:"loss"` // average training loss over the epoch's batches
	ValidationLoss float32 `json:"validation_loss"`
	TestLoss       float32 `json:"test_loss"`
}

// Tracker records per-epoch metrics of a training run.
type Tracker interface {
	Log(m Metrics) error
}

// FileTracker appends metrics to a JSON-lines file, one record per epoch.
// Records from the same run share a run ID.
type FileTracker struct {
	runID string
	file  *os.File
	enc   *json.Encoder
	now   func() time.Time
}

type record struct {
	RunID string    `json:"run_id"`
	Time  time.Time `json:"time"`
	Metrics
}

// NewFileTracker opens (creating if needed) the file at path for appending.
func NewFileTracker(path string) (*FileTracker, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tracking file: %w", err)
	}
	return &FileTracker{
		runID: uuid.NewString(),
		file:  f,
		enc:   json.NewEncoder(f),
		now:   time.Now,
	}, nil
}

// RunID returns the identifier stamped on every record of this run.
func (t *FileTracker) RunID() string {
	return t.runID
}

// Log appends one record.
func (t *FileTracker) Log(m Metrics) error {
	return t.enc.Encode(record{RunID: t.runID, Time: t.now().UTC(), Metrics: m})
}

// Close closes the underlying file.
func (t *FileTracker) Close() error {
	return t.file.Close()
}
