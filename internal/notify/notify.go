// Package notify delivers transient operator notifications.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Level is the severity of a notification.
type Level string

// Notification is a transient message for an operator.
type Notification struct {
	Level   Level     `json:"level"             yaml:"level"`
	Message string    `json:"message"           yaml:"message"`
	TraceID string    `json:"traceId,omitempty" yaml:"traceId,omitempty"` //nolint:tagliatelle
	At      time.Time `json:"at"                yaml:"at"`
}

// Notifier receives notifications. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger hclog.Logger
}

// NewLogNotifier returns a Notifier that logs through logger.
func NewLogNotifier(logger hclog.Logger) (*LogNotifier, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &LogNotifier{logger: logger.Named("notify")}, nil
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(n Notification) {
	args := []any{"level", n.Level}
	if n.TraceID != "" {
		args = append(args, "traceId", n.TraceID)
	}

	switch n.Level {
	case LevelError:
		l.logger.Error(n.Message, args...)
	case LevelWarning:
		l.logger.Warn(n.Message, args...)
	default:
		l.logger.Info(n.Message, args...)
	}
}

// Buffer holds the most recent notifications until they are drained.
// NewBuffer should be used to create instances of Buffer.
type Buffer struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewBuffer returns a Buffer retaining at most limit notifications, dropping the oldest first.
func NewBuffer(limit int) (*Buffer, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("buffer limit must be positive, got %d", limit)
	}
	return &Buffer{limit: limit}, nil
}

// Notify implements Notifier.
func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, n)
	if over := len(b.items) - b.limit; over > 0 {
		b.items = append([]Notification(nil), b.items[over:]...)
	}
}

// Drain returns the buffered notifications, oldest first, and empties the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.items
	b.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

// Len returns the number of buffered notifications.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}

// Multi fans a notification out to every non-nil notifier, in order.
func Multi(notifiers ...Notifier) Notifier {
	targets := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			targets = append(targets, n)
		}
	}

	return NotifierFunc(func(n Notification) {
		for _, t := range targets {
			t.Notify(n)
		}
	})
}
