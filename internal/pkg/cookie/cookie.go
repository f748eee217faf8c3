package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	PendingTokenCookieName = "pending_token"
	PendingTokenHeader     = "X-Pending-Token"
)

// GetAccessToken prefers the provider session cookie and falls back to a bearer header.
func GetAccessToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	return bearerToken(c.GetHeader("Authorization"))
}

// GetPendingToken reads the anonymous order token from its header or cookie.
func GetPendingToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(PendingTokenHeader)); token != "" {
		return token
	}
	token, _ := c.Cookie(PendingTokenCookieName)
	return token
}

func bearerToken(header string) string {
	if header != "" && strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// BearerToken is exported for endpoints that authenticate with a shared secret.
func BearerToken(c *gin.Context) string {
	return bearerToken(c.GetHeader("Authorization"))
}
