// Package notify delivers user-facing toasts: a title, an optional
// description and a severity.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/fatih/color"
)

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier is fire-and-forget: delivery failures are not reported back.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Writer prints notifications to a terminal.
type Writer struct {
	mu        sync.Mutex
	w         io.Writer
	useColors bool
}

func NewWriter(w io.Writer, useColors bool) *Writer {
	return &Writer{w: w, useColors: useColors}
}

func (p *Writer) Notify(_ context.Context, n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case !p.useColors && n.Severity == SeverityDestructive:
		fmt.Fprintf(p.w, "[ERROR] %s\n", n.Title)
	case !p.useColors:
		fmt.Fprintf(p.w, "[OK] %s\n", n.Title)
	case n.Severity == SeverityDestructive:
		color.New(color.FgRed).Fprintf(p.w, "✗ %s\n", n.Title)
	default:
		color.New(color.FgGreen).Fprintf(p.w, "✓ %s\n", n.Title)
	}
	if n.Description != "" {
		fmt.Fprintf(p.w, "  %s\n", n.Description)
	}
}

// Log records notifications in the structured log.
type Log struct {
	logger logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{logger: l.With("module", "notify")}
}

func (l *Log) Notify(ctx context.Context, n Notification) {
	if n.Severity == SeverityDestructive {
		l.logger.Warn(ctx, n.Title, "description", n.Description)
		return
	}
	l.logger.Info(ctx, n.Title, "description", n.Description)
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.got...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return Notification{}, false
	}
	return r.got[len(r.got)-1], true
}
