package loader

import (
	"context"
	"log/slog"
	"sync"
)

// Level classifies a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a human-readable progress or diagnostic message emitted while
// validating and importing a workbook.
type Notice struct {
	Level   Level
	Message string
}

// NoticeSink receives notices as they are produced.
type NoticeSink interface {
	Notify(n Notice)
}

// NoticeFunc adapts a function to NoticeSink.
type NoticeFunc func(Notice)

func (f NoticeFunc) Notify(n Notice) { f(n) }

// Recorder collects notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the collected notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Messages returns the messages of the collected notices at the given level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, n := range r.Notices() {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

// LogSink writes notices to a structured logger.
func LogSink(logger *slog.Logger) NoticeSink {
	return NoticeFunc(func(n Notice) {
		level := slog.LevelInfo
		switch n.Level {
		case LevelWarn:
			level = slog.LevelWarn
		case LevelError:
			level = slog.LevelError
		}
		logger.Log(context.Background(), level, n.Message, "notice", n.Level.String())
	})
}

type discardSink struct{}

func (discardSink) Notify(Notice) {}
