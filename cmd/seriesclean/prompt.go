package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// terminalUI renders cleanup dialogs as plain terminal text and reads the
// confirmation answer from the command's stdin.
type terminalUI struct {
	ctx     context.Context
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	assume  bool
	title   *color.Color
	warning *color.Color
	failure *color.Color
}

func newTerminalUI(ctx context.Context, in io.Reader, out, errOut io.Writer, assumeYes bool) *terminalUI {
	if ctx == nil {
		ctx = context.Background()
	}
	ui := &terminalUI{
		ctx:     ctx,
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		assume:  assumeYes,
		title:   color.New(color.Bold),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	if !isTerminal(out) {
		ui.title.DisableColor()
		ui.warning.DisableColor()
	}
	if !isTerminal(errOut) {
		ui.failure.DisableColor()
	}
	return ui
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (u *terminalUI) ShowMessage(title, body string) {
	fmt.Fprintln(u.out, u.title.Sprint(title))
	fmt.Fprintln(u.out, body)
	fmt.Fprintln(u.out)
}

// Confirm prints the question and waits for a y/yes answer. End of input
// without an answer counts as no; cancelling the context abandons the read.
func (u *terminalUI) Confirm(title, body string) (bool, error) {
	fmt.Fprintln(u.out, u.title.Sprint(title))
	fmt.Fprintln(u.out, u.warning.Sprint(body))
	if u.assume {
		fmt.Fprintln(u.out, "Proceeding without prompt (--yes).")
		return true, nil
	}
	fmt.Fprint(u.out, "Remove these series? [y/N]: ")

	line, err := u.readLine()
	if err != nil {
		return false, err
	}
	fmt.Fprintln(u.out)
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (u *terminalUI) ShowError(title, body string) {
	fmt.Fprintln(u.errOut, u.failure.Sprint(title))
	fmt.Fprintln(u.errOut, body)
}

type readResult struct {
	line string
	err  error
}

// readLine reads one answer line while honouring u.ctx. On cancellation the
// reader goroutine stays blocked until stdin closes with the process.
func (u *terminalUI) readLine() (string, error) {
	done := make(chan readResult, 1)
	go func() {
		line, err := u.in.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-u.ctx.Done():
		fmt.Fprintln(u.out)
		return "", fmt.Errorf("confirmation interrupted: %w", u.ctx.Err())
	case res := <-done:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", res.err)
		}
		return res.line, nil
	}
}
