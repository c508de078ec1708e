package app

import (
	"github.com/orgball2608/mention-pulse/internal/ingest"
	"github.com/orgball2608/mention-pulse/internal/ingest/ingestimpl"
	"github.com/orgball2608/mention-pulse/internal/ranking"
	"github.com/orgball2608/mention-pulse/internal/ranking/rankingimpl"
	repositories "github.com/orgball2608/mention-pulse/internal/repositories/fx"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/orgball2608/mention-pulse/pkg/pgx"
	"go.uber.org/fx"
)

// Ambient provides configuration and logging.
var Ambient = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
)

// Module provides the postgres pool, repositories and services.
var Module = fx.Options(
	fx.Provide(
		pgx.New,
	),
	repositories.Module,
	fx.Provide(
		fx.Annotate(
			ingestimpl.New,
			fx.As(new(ingest.Client)),
		),
		fx.Annotate(
			rankingimpl.New,
			fx.As(new(ranking.Client)),
		),
	),
)

var App = fx.Options(
	Ambient,
	Module,
)
