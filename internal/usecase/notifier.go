package usecase

import "context"

// Notifier requests an SMS through the external messaging function.
type Notifier interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}
