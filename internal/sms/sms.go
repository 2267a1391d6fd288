package sms

import (
	"context"

	"alcyxob/coaching-app/internal/config"

	"go.uber.org/zap"
)

// Gateway delivers text messages.
type Gateway interface {
	Send(ctx context.Context, to, body string) error
}

// NewGatewayFromConfig returns a Twilio gateway, or nil when the credentials
// are incomplete. Callers treat a nil gateway as "texting not configured".
func NewGatewayFromConfig(cfg config.SMSConfig, logger *zap.Logger) Gateway {
	if !cfg.Enabled() {
		return nil
	}
	return NewClient(ClientConfig{
		BaseURL:    cfg.BaseURL,
		AccountSID: cfg.AccountSID,
		AuthToken:  cfg.AuthToken,
		From:       cfg.From,
		Timeout:    cfg.Timeout,
	}, logger)
}
