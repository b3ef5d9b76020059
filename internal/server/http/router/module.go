package router

import "go.uber.org/fx"

// Module provides the gin engine serving the ordermart API and /metrics.
var Module = fx.Options(
	fx.Provide(Setup),
)
