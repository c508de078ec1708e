package ingestimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/ingest"
	"github.com/orgball2608/mention-pulse/internal/repositories/mention"
	"github.com/orgball2608/mention-pulse/internal/validator"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/orgball2608/mention-pulse/pkg/errors"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	MentionRepo mention.Repository
	Logger      logger.Logger
	Config      *config.Config
}

type IngestImpl struct {
	MentionRepo mention.Repository
	Logger      logger.Logger
	Workers     int
}

func New(opts Opts) *IngestImpl {
	return &IngestImpl{
		MentionRepo: opts.MentionRepo,
		Logger:      opts.Logger.WithComponent("Ingest"),
		Workers:     opts.Config.Ingest.Workers,
	}
}

var _ ingest.Client = (*IngestImpl)(nil)

func (i *IngestImpl) Ingest(ctx context.Context, batch domain.Batch) (domain.IngestReport, error) {
	report := domain.IngestReport{
		Subject:  batch.Subject,
		Received: len(batch.Posts),
		Rejected: make(map[string]int),
	}

	for idx, post := range batch.Posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if reason := validator.Check(post); reason != validator.ReasonNone {
			report.Rejected[string(reason)]++
			i.Logger.Debug("Dropped post", "subject", batch.Subject, "index", idx, "reason", reason)
			continue
		}
		report.Accepted++

		m, err := domain.NewMention(batch.Subject, post)
		if err != nil {
			report.Unparseable++
			i.Logger.Warn("Accepted post has an impossible timestamp", "subject", batch.Subject, "index", idx, "timestamp", post[domain.FieldPostTimestamp])
			continue
		}

		exists, err := i.MentionRepo.Exists(ctx, m.Subject, m.PostURL)
		if err != nil {
			return report, fmt.Errorf("failed to check mention %s for %s: %w", m.PostURL, batch.Subject, err)
		}
		if exists {
			report.Duplicates++
			continue
		}

		// A concurrent writer can still win between Exists and Create.
		if err := i.MentionRepo.Create(ctx, m); err != nil {
			if errors.Is(err, mention.ErrAlreadyExists) {
				report.Duplicates++
				continue
			}
			return report, fmt.Errorf("failed to store mention %s for %s: %w", m.PostURL, batch.Subject, err)
		}
		report.Stored++
	}

	i.Logger.Info("Batch ingested",
		"subject", batch.Subject,
		"received", report.Received,
		"accepted", report.Accepted,
		"stored", report.Stored,
		"duplicates", report.Duplicates,
		"unparseable", report.Unparseable,
		"rejected", report.Rejected,
	)
	return report, nil
}

func (i *IngestImpl) IngestAll(ctx context.Context, batches []domain.Batch) ([]domain.IngestReport, error) {
	reports := make([]domain.IngestReport, len(batches))
	errs := make([]error, len(batches))

	workers := i.Workers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for idx, batch := range batches {
		wg.Add(1)
		idx, batch := idx, batch

		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				i.Logger.Info("Skipping batch due to context cancellation", "subject", batch.Subject)
				errs[idx] = ctx.Err()
			default:
				reports[idx], errs[idx] = i.Ingest(ctx, batch)
			}
		})
		if err != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("failed to submit batch for %s: %w", batch.Subject, err)
		}
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}
