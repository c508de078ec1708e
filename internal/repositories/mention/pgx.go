package mention

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/repositories"
	"github.com/orgball2608/mention-pulse/pkg/logger"
)

const table = "mentions"

var columns = []string{
	"id", "subject", "platform", "account_name", "account_type", "content",
	"likes", "views", "engagement", "sentiment", "posted_at", "post_url", "created_at",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("MentionRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, m domain.Mention) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns(columns[1:]...).
		Values(
			m.Subject, m.Platform, m.AccountName, m.AccountType, m.Content,
			m.Likes, m.Views, m.Engagement, m.Sentiment, m.PostedAt, m.PostURL, time.Now(),
		).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (p *Pgx) ListSince(ctx context.Context, since time.Time) ([]domain.Mention, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.GtOrEq{"posted_at": since}).
		OrderBy("subject", "posted_at").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentions []domain.Mention
	for rows.Next() {
		var m domain.Mention
		if err := rows.Scan(
			&m.ID, &m.Subject, &m.Platform, &m.AccountName, &m.AccountType, &m.Content,
			&m.Likes, &m.Views, &m.Engagement, &m.Sentiment, &m.PostedAt, &m.PostURL, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	p.logger.Debug("Loaded mentions", "since", since, "count", len(mentions))
	return mentions, nil
}

func (p *Pgx) Exists(ctx context.Context, subject, postURL string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From(table).
		Where(sq.Eq{"subject": subject, "post_url": postURL}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = p.pg.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
