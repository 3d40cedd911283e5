package auth

import (
	"github.com/polkiloo/storeadmin/internal/config"
	"go.uber.org/fx"
)

// Module provides the token strategy selected by configuration.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.AuthTokenTTL, Issuer: p.Config.AuthIssuer}
	if p.Config.AuthStrategy == config.AuthStrategyJWT {
		return NewJWTStrategy(p.Config.AuthSecret, opts)
	}
	return NewHMACStrategy(p.Config.AuthSecret, opts)
}
