package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfirmReadsAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: " YES \n", want: true},
		{input: "n\n", want: false},
		{input: "", want: false},
		{input: "yes", want: true},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		ui := newTerminalUI(context.Background(), strings.NewReader(tc.input), &out, io.Discard, false)
		got, err := ui.Confirm("Series Cleaner", "Remove?")
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("input %q: got %v want %v", tc.input, got, tc.want)
		}
		requireContains(t, out.String(), "[y/N]")
	}
}

func TestConfirmReturnsWhenContextCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	t.Cleanup(func() { writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	ui := newTerminalUI(ctx, reader, io.Discard, io.Discard, false)

	done := make(chan error, 1)
	go func() {
		_, err := ui.Confirm("Series Cleaner", "Remove?")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Confirm did not return after cancellation")
	}
}
