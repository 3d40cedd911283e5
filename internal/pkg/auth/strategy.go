package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies admin bearer tokens carrying the admin subject.
type Strategy interface {
	IssueToken(subject string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return 24 * time.Hour
	}
	return o.TTL
}
