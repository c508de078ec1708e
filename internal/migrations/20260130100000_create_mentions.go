package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateMentions, downCreateMentions)
}

func upCreateMentions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE mentions (
		id           SERIAL PRIMARY KEY,
		subject      VARCHAR NOT NULL,
		platform     VARCHAR NOT NULL,
		account_name VARCHAR NOT NULL,
		account_type VARCHAR NOT NULL DEFAULT '',
		content      TEXT NOT NULL,
		likes        DOUBLE PRECISION,
		views        DOUBLE PRECISION,
		engagement   DOUBLE PRECISION NOT NULL,
		sentiment    DOUBLE PRECISION,
		posted_at    TIMESTAMP WITH TIME ZONE NOT NULL,
		post_url     VARCHAR NOT NULL,
		created_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		UNIQUE (subject, post_url)
	);
	CREATE INDEX mentions_posted_at_idx ON mentions (posted_at);
	`)
	return err
}

func downCreateMentions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE mentions;`)
	return err
}
