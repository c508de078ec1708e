package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSubjectScores, downCreateSubjectScores)
}

func upCreateSubjectScores(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE subject_scores (
		id                SERIAL PRIMARY KEY,
		subject           VARCHAR NOT NULL,
		mentions          INTEGER NOT NULL,
		mean_sentiment    DOUBLE PRECISION NOT NULL,
		stddev            DOUBLE PRECISION NOT NULL,
		weighted_score    DOUBLE PRECISION NOT NULL,
		total_engagement  DOUBLE PRECISION NOT NULL,
		trend             VARCHAR NOT NULL,
		endorsement_ready BOOLEAN NOT NULL,
		rank              INTEGER NOT NULL,
		computed_at       TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX subject_scores_subject_computed_at_idx ON subject_scores (subject, computed_at DESC);
	`)
	return err
}

func downCreateSubjectScores(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE subject_scores;`)
	return err
}
