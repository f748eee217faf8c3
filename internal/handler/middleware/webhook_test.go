//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"homeclean/internal/handler/middleware"
	"homeclean/internal/pkg/config"
	"homeclean/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func webhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/hook", middleware.RequireWebhookSecret(config.WebhookConfig{Secret: secret}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireWebhookSecret(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		headers    map[string]string
		wantStatus int
	}{
		{name: "matching header", secret: "s3cret", headers: map[string]string{middleware.WebhookSecretHeader: "s3cret"}, wantStatus: http.StatusOK},
		{name: "matching bearer", secret: "s3cret", headers: map[string]string{"Authorization": "Bearer s3cret"}, wantStatus: http.StatusOK},
		{name: "wrong secret", secret: "s3cret", headers: map[string]string{middleware.WebhookSecretHeader: "guess"}, wantStatus: http.StatusUnauthorized},
		{name: "prefix of the secret", secret: "s3cret", headers: map[string]string{middleware.WebhookSecretHeader: "s3cre"}, wantStatus: http.StatusUnauthorized},
		{name: "missing header", secret: "s3cret", wantStatus: http.StatusUnauthorized},
		{name: "server secret not configured", secret: "", headers: map[string]string{middleware.WebhookSecretHeader: ""}, wantStatus: http.StatusInternalServerError},
		{name: "unconfigured server ignores any presented secret", secret: "", headers: map[string]string{middleware.WebhookSecretHeader: "anything"}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequestWithHeaders(t, webhookRouter(tt.secret), http.MethodPost, "/hook", map[string]any{}, tt.headers)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
