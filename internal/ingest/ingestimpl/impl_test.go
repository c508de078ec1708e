package ingestimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/repositories/mention"
	mock_mention "github.com/orgball2608/mention-pulse/internal/repositories/mention/mocks"
	"github.com/orgball2608/mention-pulse/internal/validator"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func post(url string) domain.RawPost {
	return domain.RawPost{
		"platform":        "Instagram",
		"account_name":    "@test_account",
		"content":         "Test post content",
		"engagement":      map[string]any{"likes": 1000.0},
		"post_timestamp":  "2026-01-30T10:00:00+08:00",
		"post_url":        url,
		"sentiment_score": 0.6,
	}
}

func newService(repo mention.Repository, workers int) *IngestImpl {
	return &IngestImpl{
		MentionRepo: repo,
		Logger:      logger.New(logger.Opts{Env: "test", Output: io.Discard}),
		Workers:     workers,
	}
}

func TestIngest_StoresAcceptedAndCountsRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	twitter := post("https://x.com/1")
	twitter["platform"] = "Twitter"
	noEngagement := post("https://instagram.com/p/2")
	noEngagement["engagement"] = map[string]any{"likes": 0.0, "comments": 3.0}
	dateOnly := post("https://instagram.com/p/3")
	dateOnly["post_timestamp"] = "2026-01-30"
	missing := post("https://instagram.com/p/4")
	delete(missing, "content")
	impossible := post("https://instagram.com/p/5")
	impossible["post_timestamp"] = "2026-02-30T10:00:00Z"

	batch := domain.Batch{
		Subject: "Test Celebrity",
		Posts: []domain.RawPost{
			post("https://instagram.com/p/1"),
			twitter,
			noEngagement,
			dateOnly,
			missing,
			impossible,
			post("https://instagram.com/p/6"),
			post("https://instagram.com/p/1"),
		},
	}

	var stored []string
	repo.EXPECT().
		Exists(gomock.Any(), "Test Celebrity", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, url string) (bool, error) {
			for _, s := range stored {
				if s == url {
					return true, nil
				}
			}
			return false, nil
		}).
		Times(3)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m domain.Mention) error {
			assert.Equal(t, "Test Celebrity", m.Subject)
			stored = append(stored, m.PostURL)
			return nil
		}).
		Times(2)

	report, err := newService(repo, 1).Ingest(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, 8, report.Received)
	assert.Equal(t, 4, report.Accepted)
	assert.Equal(t, 1, report.Unparseable)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, map[string]int{
		string(validator.ReasonInvalidPlatform):  1,
		string(validator.ReasonNoEngagement):     1,
		string(validator.ReasonInvalidTimestamp): 1,
		string(validator.ReasonMissingField):     1,
	}, report.Rejected)
	assert.Equal(t, []string{"https://instagram.com/p/1", "https://instagram.com/p/6"}, stored)
}

func TestIngest_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	repo.EXPECT().Exists(gomock.Any(), "S", "a").Return(false, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	batch := domain.Batch{Subject: "S", Posts: []domain.RawPost{post("a"), post("b")}}
	report, err := newService(repo, 1).Ingest(context.Background(), batch)

	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 0, report.Stored)
}

func TestIngest_ExistsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	repo.EXPECT().Exists(gomock.Any(), "S", "a").Return(false, errors.New("pool closed"))

	batch := domain.Batch{Subject: "S", Posts: []domain.RawPost{post("a")}}
	report, err := newService(repo, 1).Ingest(context.Background(), batch)

	assert.ErrorContains(t, err, "pool closed")
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 0, report.Stored)
}

func TestIngest_UniqueViolationCountsAsDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	repo.EXPECT().Exists(gomock.Any(), "S", "a").Return(false, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(fmt.Errorf("insert: %w", mention.ErrAlreadyExists))

	batch := domain.Batch{Subject: "S", Posts: []domain.RawPost{post("a")}}
	report, err := newService(repo, 1).Ingest(context.Background(), batch)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 0, report.Stored)
}

func TestIngest_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(repo, 1).Ingest(ctx, domain.Batch{Subject: "S", Posts: []domain.RawPost{post("a")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestAll_KeepsBatchOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	var mu sync.Mutex
	perSubject := map[string]int{}
	repo.EXPECT().Exists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m domain.Mention) error {
			mu.Lock()
			defer mu.Unlock()
			perSubject[m.Subject]++
			return nil
		}).
		AnyTimes()

	var batches []domain.Batch
	for i := 0; i < 10; i++ {
		posts := make([]domain.RawPost, i)
		for j := range posts {
			posts[j] = post(fmt.Sprintf("https://instagram.com/p/%d-%d", i, j))
		}
		batches = append(batches, domain.Batch{Subject: fmt.Sprintf("subject-%d", i), Posts: posts})
	}

	reports, err := newService(repo, 3).IngestAll(context.Background(), batches)
	require.NoError(t, err)
	require.Len(t, reports, 10)

	for i, r := range reports {
		assert.Equal(t, fmt.Sprintf("subject-%d", i), r.Subject)
		assert.Equal(t, i, r.Stored)
	}
	assert.Equal(t, 9, perSubject["subject-9"])
}

func TestIngestAll_ReturnsFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_mention.NewMockRepository(ctrl)

	repo.EXPECT().Exists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m domain.Mention) error {
			if m.Subject == "bad" {
				return errors.New("disk full")
			}
			return nil
		}).
		Times(2)

	batches := []domain.Batch{
		{Subject: "good", Posts: []domain.RawPost{post("a")}},
		{Subject: "bad", Posts: []domain.RawPost{post("b")}},
	}

	reports, err := newService(repo, 2).IngestAll(context.Background(), batches)
	assert.ErrorContains(t, err, "disk full")
	require.Len(t, reports, 2)
	assert.Equal(t, 1, reports[0].Stored)
}
