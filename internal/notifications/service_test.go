package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seriesclean/internal/notifications"
	"seriesclean/internal/testsupport"
)

type captured struct {
	title    string
	message  string
	tags     string
	priority string
	agent    string
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var requests []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			message:  string(body),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			agent:    r.Header.Get("User-Agent"),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte("topic unavailable"))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	svc := notifications.NewService(cfg)
	if err := svc.NotifySeriesRemoved(context.Background(), "Series", "Game"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).TestNotification(context.Background()); err != nil {
		t.Fatalf("expected nil config to yield noop, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "series removed",
			send: func(s notifications.Service) error {
				return s.NotifySeriesRemoved(context.Background(), " Alpha Saga ", "Alpha One")
			},
			expectTitle:    "Series Cleaner - Series Removed",
			expectMessage:  "Removed series 'Alpha Saga' (Game: Alpha One)",
			expectTags:     "seriesclean,series,removed",
			expectPriority: "low",
		},
		{
			name: "cleanup completed",
			send: func(s notifications.Service) error {
				return s.NotifyCleanupCompleted(context.Background(), 4, 0, 1500*time.Millisecond)
			},
			expectTitle:   "Series Cleaner - Complete",
			expectMessage: "Removed 4 single-game series in 1.5s",
			expectTags:    "seriesclean,cleanup,completed",
		},
		{
			name: "cleanup completed with failures",
			send: func(s notifications.Service) error {
				return s.NotifyCleanupCompleted(context.Background(), 3, 1, 2*time.Second)
			},
			expectTitle:    "Series Cleaner - Complete (with errors)",
			expectMessage:  "Removed 3 single-game series, 1 failed in 2s",
			expectTags:     "seriesclean,cleanup,completed",
			expectPriority: "high",
		},
		{
			name: "error",
			send: func(s notifications.Service) error {
				return s.NotifyError(context.Background(), errors.New("database is locked"), "cleaning series")
			},
			expectTitle:    "Series Cleaner - Error",
			expectMessage:  "Error while cleaning series: database is locked",
			expectTags:     "seriesclean,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			send: func(s notifications.Service) error {
				return s.TestNotification(context.Background())
			},
			expectTitle:    "Series Cleaner - Test",
			expectMessage:  "Notification system test",
			expectTags:     "seriesclean,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, requests := newCaptureServer(t, http.StatusOK)
			svc := notifications.NewService(testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL)))
			if err := tc.send(svc); err != nil {
				t.Fatalf("send: %v", err)
			}
			if len(*requests) != 1 {
				t.Fatalf("expected one request, got %d", len(*requests))
			}
			got := (*requests)[0]
			if got.title != tc.expectTitle {
				t.Errorf("title: got %q want %q", got.title, tc.expectTitle)
			}
			if got.message != tc.expectMessage {
				t.Errorf("message: got %q want %q", got.message, tc.expectMessage)
			}
			if got.tags != tc.expectTags {
				t.Errorf("tags: got %q want %q", got.tags, tc.expectTags)
			}
			if got.priority != tc.expectPriority {
				t.Errorf("priority: got %q want %q", got.priority, tc.expectPriority)
			}
			if !strings.HasPrefix(got.agent, "seriesclean/") {
				t.Errorf("unexpected user agent %q", got.agent)
			}
		})
	}
}

func TestNtfyServiceReportsHTTPFailure(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusServiceUnavailable)
	svc := notifications.NewService(testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL)))
	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "topic unavailable") {
		t.Fatalf("unexpected error: %v", err)
	}
}
