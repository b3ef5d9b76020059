package metrics

import "go.uber.org/fx"

// Module provides the service metrics set.
var Module = fx.Provide(New)
