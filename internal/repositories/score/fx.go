package score

import (
	"go.uber.org/fx"
)

var Module = fx.Module("score_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)
