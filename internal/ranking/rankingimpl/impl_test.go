package rankingimpl

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/orgball2608/mention-pulse/internal/domain"
	mock_mention "github.com/orgball2608/mention-pulse/internal/repositories/mention/mocks"
	"github.com/orgball2608/mention-pulse/internal/repositories/score"
	mock_score "github.com/orgball2608/mention-pulse/internal/repositories/score/mocks"
	"github.com/orgball2608/mention-pulse/internal/scoring"
	apperrors "github.com/orgball2608/mention-pulse/pkg/errors"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func sentiment(v float64) *float64 { return &v }

func mentionOf(subject, platform string, score, engagement float64) domain.Mention {
	return domain.Mention{
		Subject:    subject,
		Platform:   platform,
		Content:    "post",
		Sentiment:  sentiment(score),
		Engagement: engagement,
		PostedAt:   now.Add(-time.Hour),
	}
}

func newService(ctrl *gomock.Controller) (*RankingImpl, *mock_mention.MockRepository, *mock_score.MockRepository) {
	mentions := mock_mention.NewMockRepository(ctrl)
	scores := mock_score.NewMockRepository(ctrl)
	return &RankingImpl{
		MentionRepo: mentions,
		ScoreRepo:   scores,
		Logger:      logger.New(logger.Opts{Env: "test", Output: io.Discard}),
		Weights:     scoring.DefaultWeights,
		Thresholds:  scoring.DefaultThresholds(),
		Now:         func() time.Time { return now },
	}, mentions, scores
}

func TestRank(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, scores := newService(ctrl)
	since := now.AddDate(0, 0, -7)

	mentions.EXPECT().ListSince(gomock.Any(), since).Return([]domain.Mention{
		mentionOf("A", "Instagram", 0.5, 100),
		mentionOf("A", "Instagram", 0.5, 50),
		mentionOf("B", "TikTok", 0.9, 1000),
		mentionOf("B", "TikTok", 0.8, 10),
	}, nil)

	scores.EXPECT().Latest(gomock.Any(), "B").Return(&domain.SubjectScore{WeightedScore: 0.60}, nil)
	scores.EXPECT().Latest(gomock.Any(), "A").Return(nil, score.ErrNotFound)

	var stored []domain.SubjectScore
	scores.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s domain.SubjectScore) error {
			stored = append(stored, s)
			return nil
		}).
		Times(2)

	result, err := svc.Rank(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, result, stored)

	b := result[0]
	assert.Equal(t, "B", b.Subject)
	assert.Equal(t, 1, b.Rank)
	assert.Equal(t, 2, b.Mentions)
	assert.InDelta(t, 0.85, b.WeightedScore, 1e-9)
	assert.Equal(t, 1010.0, b.TotalEngagement)
	assert.Equal(t, string(scoring.TrendFastRising), b.Trend)
	assert.True(t, b.EndorsementReady)
	assert.Equal(t, now, b.ComputedAt)

	a := result[1]
	assert.Equal(t, "A", a.Subject)
	assert.Equal(t, 2, a.Rank)
	assert.InDelta(t, 0.45, a.WeightedScore, 1e-9)
	assert.Equal(t, 0.0, a.StdDev)
	assert.Equal(t, string(scoring.TrendNoBaseline), a.Trend)
	assert.False(t, a.EndorsementReady)
}

func TestRank_NoMentions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, _ := newService(ctrl)

	mentions.EXPECT().ListSince(gomock.Any(), gomock.Any()).Return(nil, nil)

	result, err := svc.Rank(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRank_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, _ := newService(ctrl)

	mentions.EXPECT().ListSince(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.Rank(context.Background(), now)
	assert.ErrorContains(t, err, "timeout")
}

func TestRank_PreviousScoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, scores := newService(ctrl)

	mentions.EXPECT().ListSince(gomock.Any(), gomock.Any()).Return([]domain.Mention{
		mentionOf("A", "News", 0.1, 1),
	}, nil)
	scores.EXPECT().Latest(gomock.Any(), "A").Return(nil, errors.New("broken pipe"))

	_, err := svc.Rank(context.Background(), now)
	assert.ErrorContains(t, err, "broken pipe")
}

func TestRank_WrappedNotFoundMeansNoBaseline(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, scores := newService(ctrl)

	mentions.EXPECT().ListSince(gomock.Any(), gomock.Any()).Return([]domain.Mention{
		mentionOf("A", "News", 0.8, 5),
	}, nil)
	scores.EXPECT().Latest(gomock.Any(), "A").Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "cache miss"))
	scores.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Rank(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, string(scoring.TrendNoBaseline), result[0].Trend)
}

func TestRank_SkipsIncompleteMentions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mentions, scores := newService(ctrl)

	noContent := mentionOf("B", "TikTok", 0.9, 1000)
	noContent.Content = ""
	noTimestamp := mentionOf("B", "TikTok", 0.9, 1000)
	noTimestamp.PostedAt = time.Time{}
	noEngagement := mentionOf("C", "News", 0.9, 0)

	mentions.EXPECT().ListSince(gomock.Any(), gomock.Any()).Return([]domain.Mention{
		noContent,
		mentionOf("A", "Instagram", 0.4, 10),
		noTimestamp,
		noEngagement,
	}, nil)
	scores.EXPECT().Latest(gomock.Any(), "A").Return(nil, score.ErrNotFound)
	scores.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Rank(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "A", result[0].Subject)
	assert.Equal(t, 1, result[0].Mentions)
}
