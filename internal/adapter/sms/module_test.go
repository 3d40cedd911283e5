package sms

import (
	"testing"

	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
)

func TestNewSenderUsesConfig(t *testing.T) {
	cfg := &config.Config{SMSFunctionURL: "https://functions.example.com/sendSms"}
	sender, err := newSender(senderParams{Config: cfg, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sender.(*CallableClient); !ok {
		t.Fatalf("expected callable client, got %T", sender)
	}
}

func TestNewSenderDisabledWithoutURL(t *testing.T) {
	sender, err := newSender(senderParams{Config: &config.Config{}, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sender.(*Disabled); !ok {
		t.Fatalf("expected disabled sender, got %T", sender)
	}
}
