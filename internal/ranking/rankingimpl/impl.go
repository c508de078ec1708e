package rankingimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/ranking"
	"github.com/orgball2608/mention-pulse/internal/repositories/mention"
	"github.com/orgball2608/mention-pulse/internal/repositories/score"
	"github.com/orgball2608/mention-pulse/internal/scoring"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/orgball2608/mention-pulse/pkg/errors"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	MentionRepo mention.Repository
	ScoreRepo   score.Repository
	Logger      logger.Logger
	Config      *config.Config
}

type RankingImpl struct {
	MentionRepo mention.Repository
	ScoreRepo   score.Repository
	Logger      logger.Logger
	Weights     map[string]int
	Thresholds  scoring.Thresholds
	Now         func() time.Time
}

func New(opts Opts) *RankingImpl {
	return &RankingImpl{
		MentionRepo: opts.MentionRepo,
		ScoreRepo:   opts.ScoreRepo,
		Logger:      opts.Logger.WithComponent("Ranking"),
		Weights:     opts.Config.Scoring.SourceWeights,
		Thresholds: scoring.Thresholds{
			Confidence: opts.Config.Scoring.ConfidenceThreshold,
			StddevMax:  opts.Config.Scoring.StddevMax,
		},
		Now: time.Now,
	}
}

var _ ranking.Client = (*RankingImpl)(nil)

func (r *RankingImpl) Rank(ctx context.Context, since time.Time) ([]domain.SubjectScore, error) {
	mentions, err := r.MentionRepo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentions: %w", err)
	}

	var subjects []string
	var incomplete int
	bySubject := make(map[string][]domain.Mention)
	for _, m := range mentions {
		if !scoring.RowComplete(scoring.MentionRow(m)) {
			incomplete++
			continue
		}
		if _, seen := bySubject[m.Subject]; !seen {
			subjects = append(subjects, m.Subject)
		}
		bySubject[m.Subject] = append(bySubject[m.Subject], m)
	}

	if incomplete > 0 {
		r.Logger.Warn("Skipped incomplete mentions", "count", incomplete)
	}

	summaries := make([]scoring.Summary, 0, len(subjects))
	for _, subject := range subjects {
		summaries = append(summaries, scoring.Summarize(subject, bySubject[subject], r.Weights))
	}
	ranked := scoring.Rank(summaries)

	computedAt := r.Now()
	scores := make([]domain.SubjectScore, 0, len(ranked))
	for _, s := range ranked {
		previous, err := r.previousScore(ctx, s.Subject)
		if err != nil {
			return nil, err
		}

		snapshot := domain.SubjectScore{
			Subject:          s.Subject,
			Mentions:         s.Mentions,
			MeanSentiment:    s.MeanSentiment,
			StdDev:           s.StdDev,
			WeightedScore:    s.WeightedScore,
			TotalEngagement:  s.TotalEngagement,
			Trend:            string(scoring.TrendDirection(s.WeightedScore, previous)),
			EndorsementReady: scoring.EndorsementReady(s.WeightedScore, s.StdDev, r.Thresholds),
			Rank:             s.Rank,
			ComputedAt:       computedAt,
		}

		if err := r.ScoreRepo.Create(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("failed to store score for %s: %w", s.Subject, err)
		}
		scores = append(scores, snapshot)
	}

	r.Logger.Info("Ranking computed", "since", since, "mentions", len(mentions), "subjects", len(scores))
	return scores, nil
}

func (r *RankingImpl) previousScore(ctx context.Context, subject string) (*float64, error) {
	latest, err := r.ScoreRepo.Latest(ctx, subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load previous score for %s: %w", subject, err)
	}
	return &latest.WeightedScore, nil
}
