package logger

import (
	"github.com/orgball2608/mention-pulse/pkg/config"
	"go.uber.org/fx"
)

var FxOption = fx.Annotate(
	func(cfg *config.Config) *Impl {
		return New(
			Opts{
				Env:       cfg.App.Env,
				SentryDsn: cfg.App.SentryUrl,
			},
		)
	},
	fx.As(new(Logger)),
)
