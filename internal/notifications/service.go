package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"seriesclean/internal/config"
)

const (
	userAgent      = "seriesclean/0.1.0"
	defaultTimeout = 10 * time.Second
	titlePrefix    = "Series Cleaner"
)

// Service defines the notification surface used by the cleanup and the CLI.
type Service interface {
	NotifySeriesRemoved(ctx context.Context, seriesName, gameName string) error
	NotifyCleanupCompleted(ctx context.Context, removed, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifySeriesRemoved(ctx context.Context, seriesName, gameName string) error {
	seriesName = strings.TrimSpace(seriesName)
	gameName = strings.TrimSpace(gameName)
	data := payload{
		title:    titlePrefix + " - Series Removed",
		message:  fmt.Sprintf("Removed series '%s' (Game: %s)", seriesName, gameName),
		tags:     []string{"seriesclean", "series", "removed"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyCleanupCompleted(ctx context.Context, removed, failed int, duration time.Duration) error {
	duration = duration.Round(time.Millisecond)
	if duration < 0 {
		duration = 0
	}

	data := payload{
		title:   titlePrefix + " - Complete",
		message: fmt.Sprintf("Removed %d single-game series in %s", removed, duration),
		tags:    []string{"seriesclean", "cleanup", "completed"},
	}
	if failed > 0 {
		data.title = titlePrefix + " - Complete (with errors)"
		data.message = fmt.Sprintf("Removed %d single-game series, %d failed in %s", removed, failed, duration)
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" while ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    titlePrefix + " - Error",
		message:  builder.String(),
		tags:     []string{"seriesclean", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    titlePrefix + " - Test",
		message:  "Notification system test",
		tags:     []string{"seriesclean", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifySeriesRemoved(context.Context, string, string) error             { return nil }
func (noopService) NotifyCleanupCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                      { return nil }
func (noopService) TestNotification(context.Context) error                                { return nil }
