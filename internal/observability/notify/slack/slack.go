// Package slack delivers job failure notifications to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/target/text2ture/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
	// StatusURLPrefix turns the job UID into a link, e.g. https://api.example.com/status.
	StatusURLPrefix string
}

// Client posts job failure messages to a Slack webhook.
type Client struct {
	webhookURL      string
	channel         string
	username        string
	retryLimit      int
	statusURLPrefix string
	client          *http.Client
}

var _ notify.Sink = (*Client)(nil)

// NewClient builds a Slack webhook client.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURL:      webhookURL,
		channel:         strings.TrimSpace(cfg.Channel),
		username:        fallbackString(strings.TrimSpace(cfg.Username), "text2ture"),
		retryLimit:      max(cfg.RetryLimit, 0),
		statusURLPrefix: strings.TrimSpace(cfg.StatusURLPrefix),
		client:          hc,
	}, nil
}

// SendJobFailure posts a formatted message to Slack, retrying with linear backoff.
func (c *Client) SendJobFailure(ctx context.Context, payload notify.JobFailurePayload) error {
	body, err := json.Marshal(c.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		if lastErr = c.post(ctx, body); lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (c *Client) formatMessage(payload notify.JobFailurePayload) map[string]any {
	timestamp := payload.OccurredAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var text strings.Builder
	text.WriteString("*Job failed*")
	if uid := c.formatUID(payload.UID); uid != "" {
		text.WriteByte(' ')
		text.WriteString(uid)
	}
	text.WriteByte('\n')

	appendField(&text, "Severity", fallbackString(payload.Severity, notify.SeverityCritical))
	appendField(&text, "Attempt", payload.AttemptID)
	appendField(&text, "Error class", payload.ErrorClass)
	appendField(&text, "Error", escapeSlackText(payload.Error))
	if payload.Duration > 0 {
		appendField(&text, "Duration", payload.Duration.Round(time.Millisecond).String())
	}
	appendMetadata(&text, payload.Metadata)
	text.WriteString("• Timestamp: ")
	text.WriteString(timestamp.UTC().Format(time.RFC3339))

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

// formatUID renders the UID as a Slack link to its status endpoint when a prefix is configured.
func (c *Client) formatUID(rawUID string) string {
	rawUID = strings.TrimSpace(rawUID)
	if rawUID == "" {
		return ""
	}
	uid := escapeSlackText(rawUID)
	if link := c.statusLink(rawUID); link != "" {
		return fmt.Sprintf("<%s|%s>", link, uid)
	}
	return "`" + uid + "`"
}

func (c *Client) statusLink(uid string) string {
	if c.statusURLPrefix == "" {
		return ""
	}
	u, err := url.Parse(c.statusURLPrefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	link, err := url.JoinPath(u.String(), uid)
	if err != nil {
		return ""
	}
	return link
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("read slack error response: %w", readErr)
		}
		return fmt.Errorf("slack webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain slack response body: %w", err)
	}
	return nil
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func escapeSlackText(value string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(value)
}

func appendField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func appendMetadata(text *strings.Builder, metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	text.WriteString("• Metadata:\n")
	for _, k := range keys {
		text.WriteString("    • ")
		text.WriteString(k)
		text.WriteString(": ")
		text.WriteString(metadata[k])
		text.WriteByte('\n')
	}
}
