package sms

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	defaultTimeout = 10 * time.Second
)

type ClientConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends messages through the Twilio Messages API.
type Client struct {
	httpClient *http.Client
	messageURL string
	accountSID string
	authToken  string
	from       string
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		messageURL: baseURL + "/2010-04-01/Accounts/" + url.PathEscape(cfg.AccountSID) + "/Messages.json",
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		logger:     logger,
	}
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type errorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func (c *Client) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messageURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "create twilio request")
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request twilio messages api")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "read twilio response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if err := sonic.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return errors.Newf("twilio rejected message: status=%d code=%d: %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return errors.Newf("twilio rejected message: status=%d", resp.StatusCode)
	}

	var msg messageResponse
	if err := sonic.Unmarshal(raw, &msg); err != nil {
		return errors.Wrap(err, "decode twilio response")
	}
	c.logger.Debug("sms sent", zap.String("sid", msg.SID), zap.String("status", msg.Status))
	return nil
}
