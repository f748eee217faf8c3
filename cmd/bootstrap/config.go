package bootstrap

import (
	"log/slog"

	"homeclean/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(warnMissingWebhookSecret),
)

// The webhook endpoint rejects every call without a secret; say so at startup too.
func warnMissingWebhookSecret(cfg config.Config, logger *slog.Logger) {
	if cfg.Webhook.Secret == "" {
		logger.Warn("PAYMENT_WEBHOOK_SECRET is not set; payment webhooks will be rejected")
	}
}
