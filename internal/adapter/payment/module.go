package payment

import (
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v78"
	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/config"
	"github.com/polkiloo/ordermart/internal/metrics"
)

// Module exposes the refund gateway to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newGateway(p gatewayParams) (RefundGateway, error) {
	if p.Config.StripeAPIKey == "" {
		p.Logger.Warn("stripe api key is not set, refunds are disabled")
		return unconfiguredGateway{}, nil
	}

	var backends *stripe.Backends
	if p.Config.StripeAPIURL != "" {
		backendCfg := &stripe.BackendConfig{
			URL:               stripe.String(p.Config.StripeAPIURL),
			HTTPClient:        &http.Client{Timeout: p.Config.RefundTimeout},
			MaxNetworkRetries: stripe.Int64(0),
		}
		backends = &stripe.Backends{
			API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
			Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
		}
	}

	return NewStripeGateway(StripeConfig{
		APIKey:   p.Config.StripeAPIKey,
		Timeout:  p.Config.RefundTimeout,
		Backends: backends,
		Logger:   p.Logger,
		Metrics:  p.Metrics,
	})
}
