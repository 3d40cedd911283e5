package auth

import (
	"testing"
	"time"

	"github.com/polkiloo/storeadmin/internal/config"
)

func TestNewTokenStrategyDefaultsToHMAC(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{AuthSecret: "top-secret"}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewTokenStrategyJWT(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		AuthStrategy: config.AuthStrategyJWT,
		AuthSecret:   "top-secret",
		AuthIssuer:   "issuer",
		AuthTokenTTL: time.Hour,
	}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if jwtStrategy.issuer != "issuer" || jwtStrategy.ttl != time.Hour {
		t.Fatalf("unexpected strategy settings: %+v", jwtStrategy)
	}
}
