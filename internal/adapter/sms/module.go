package sms

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
)

// Module exposes the SMS sender implementation to fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.SMSFunctionURL == "" {
		return NewDisabled(p.Logger), nil
	}
	client, err := NewCallableClient(p.Config.SMSFunctionURL, p.Config.SMSFunctionToken, p.Config.SMSTimeout, p.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
