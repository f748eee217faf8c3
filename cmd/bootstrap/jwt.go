package bootstrap

import (
	"homeclean/internal/pkg/config"
	"homeclean/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// Tokens are minted by the auth provider; this service only verifies them.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
}
