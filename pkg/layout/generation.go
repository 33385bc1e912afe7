package layout

import (
	"time"

	"github.com/google/uuid"
)

// Generation is one published layout. IDs increase monotonically within a
// process; a newer generation always supersedes an older one.
type Generation struct {
	ID        uint64    `json:"generation"`
	RunID     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Result
}

// NewGeneration wraps res as generation id.
func NewGeneration(id uint64, res Result) *Generation {
	return &Generation{ID: id, RunID: uuid.New(), CreatedAt: time.Now(), Result: res}
}

// Newer reports whether g supersedes other. A nil other is always superseded.
func (g *Generation) Newer(other *Generation) bool {
	return other == nil || g.ID > other.ID
}
