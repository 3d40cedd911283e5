package test

import (
	"context"
	"sync"
)

// SentSMS records a single notification.
type SentSMS struct {
	Phone   string
	Message string
}

// NotifierStub records outgoing messages.
type NotifierStub struct {
	mu   sync.Mutex
	Sent []SentSMS
	Err  error
}

// SendSMS stores the message or returns the configured error.
func (s *NotifierStub) SendSMS(ctx context.Context, phoneNumber, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentSMS{Phone: phoneNumber, Message: message})
	return nil
}
