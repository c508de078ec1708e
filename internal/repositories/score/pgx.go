package score

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/repositories"
	"github.com/orgball2608/mention-pulse/pkg/logger"
)

const table = "subject_scores"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("SubjectScoreRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, s domain.SubjectScore) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns(
			"subject", "mentions", "mean_sentiment", "stddev", "weighted_score",
			"total_engagement", "trend", "endorsement_ready", "rank", "computed_at",
		).
		Values(
			s.Subject, s.Mentions, s.MeanSentiment, s.StdDev, s.WeightedScore,
			s.TotalEngagement, s.Trend, s.EndorsementReady, s.Rank, s.ComputedAt,
		).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

func (p *Pgx) Latest(ctx context.Context, subject string) (*domain.SubjectScore, error) {
	query, args, err := repositories.SqBuilder.
		Select(
			"id", "subject", "mentions", "mean_sentiment", "stddev", "weighted_score",
			"total_engagement", "trend", "endorsement_ready", "rank", "computed_at",
		).
		From(table).
		Where(sq.Eq{"subject": subject}).
		OrderBy("computed_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var s domain.SubjectScore
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Subject, &s.Mentions, &s.MeanSentiment, &s.StdDev, &s.WeightedScore,
		&s.TotalEngagement, &s.Trend, &s.EndorsementReady, &s.Rank, &s.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}
