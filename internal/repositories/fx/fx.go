package fx

import (
	"github.com/orgball2608/mention-pulse/internal/repositories/mention"
	"github.com/orgball2608/mention-pulse/internal/repositories/score"
	"go.uber.org/fx"
)

var Module = fx.Options(
	mention.Module,
	score.Module,
)
