package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
)

// ErrDeliveryRejected indicates the SMS function answered without success.
var ErrDeliveryRejected = errors.New("sms delivery rejected")

// TooManyRequestsError represents rate limiting signal from the SMS function.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Sender delivers text messages to customers.
type Sender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

// CallableClient invokes an HTTPS callable function that sends SMS.
type CallableClient struct {
	endpoint   *url.URL
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

type callableRequest struct {
	Data payload `json:"data"`
}

type payload struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

type callableError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// callableResponse mirrors the callable function envelope.
type callableResponse struct {
	Result *struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	} `json:"result,omitempty"`
	Error *callableError `json:"error,omitempty"`
}

// NewCallableClient creates SMS client for the callable endpoint.
func NewCallableClient(endpoint, token string, timeout time.Duration, logger *zap.Logger) (*CallableClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse sms function url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sms function url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CallableClient{
		endpoint:   parsed,
		token:      token,
		logger:     logger.Named("sms"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SendSMS posts the message to the callable function.
func (c *CallableClient) SendSMS(ctx context.Context, phoneNumber, message string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" || strings.TrimSpace(message) == "" {
		return domainErrors.ErrMissingRecipient
	}

	body, err := json.Marshal(callableRequest{Data: payload{PhoneNumber: phoneNumber, Message: message}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var data callableResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("decode sms response: %w", err)
		}
		switch {
		case data.Error != nil:
			return fmt.Errorf("%w: %s %s", ErrDeliveryRejected, data.Error.Status, data.Error.Message)
		case data.Result == nil || !data.Result.Success:
			reason := ""
			if data.Result != nil {
				reason = data.Result.Error
			}
			return fmt.Errorf("%w: %s", ErrDeliveryRejected, reason)
		}
		c.logger.Debug("sms sent", zap.String("phone", maskPhone(phoneNumber)))
		return nil
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("sms request failed", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return fmt.Errorf("sms function error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// Disabled drops messages when no SMS function is configured.
type Disabled struct {
	logger *zap.Logger
}

// NewDisabled constructs Disabled sender.
func NewDisabled(logger *zap.Logger) *Disabled {
	return &Disabled{logger: logger.Named("sms")}
}

// SendSMS logs and discards the message.
func (d *Disabled) SendSMS(_ context.Context, phoneNumber, _ string) error {
	d.logger.Info("sms disabled, message dropped", zap.String("phone", maskPhone(phoneNumber)))
	return nil
}
