package mention

import (
	"go.uber.org/fx"
)

var Module = fx.Module("mention_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)
