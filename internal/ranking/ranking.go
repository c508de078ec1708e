package ranking

import (
	"context"
	"time"

	"github.com/orgball2608/mention-pulse/internal/domain"
)

type Client interface {
	// Rank summarises mentions posted since the given time, stores a snapshot
	// per subject and returns the snapshots in rank order.
	Rank(ctx context.Context, since time.Time) ([]domain.SubjectScore, error)
}
