package ingest

import (
	"context"

	"github.com/orgball2608/mention-pulse/internal/domain"
)

type Client interface {
	// Ingest validates one batch and stores its accepted mentions.
	Ingest(ctx context.Context, batch domain.Batch) (domain.IngestReport, error)

	// IngestAll ingests batches concurrently. Reports keep the order of batches.
	IngestAll(ctx context.Context, batches []domain.Batch) ([]domain.IngestReport, error)
}
