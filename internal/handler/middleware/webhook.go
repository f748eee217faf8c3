package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"homeclean/internal/pkg/config"
	"homeclean/internal/pkg/cookie"
	"homeclean/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// RequireWebhookSecret fails closed: without a configured secret every call is refused.
func RequireWebhookSecret(cfg config.WebhookConfig) gin.HandlerFunc {
	expected := []byte(cfg.Secret)

	return func(c *gin.Context) {
		if len(expected) == 0 {
			slog.Error("payment webhook called but PAYMENT_WEBHOOK_SECRET is not configured")
			metrics.RecordWebhookEvent("misconfigured")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Webhook secret is not configured"},
			})
			c.Abort()
			return
		}

		presented := strings.TrimSpace(c.GetHeader(WebhookSecretHeader))
		if presented == "" {
			presented = cookie.BearerToken(c)
		}
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			metrics.RecordWebhookEvent("unauthorized")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid webhook secret"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
