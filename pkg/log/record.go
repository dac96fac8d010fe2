package log

import (
	"strings"
	"sync"
)

// Level identifies the severity of a recorded entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Entry is a single recorded log call.
type Entry struct {
	Level  Level
	Msg    string
	Fields []Field
}

// Recorder implements Logger by capturing entries in memory.
// It is intended for tests that assert on log output.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates a new recording logger.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug-level entry.
func (r *Recorder) Debug(msg string, fields ...Field) { r.record(LevelDebug, msg, fields) }

// Info records an info-level entry.
func (r *Recorder) Info(msg string, fields ...Field) { r.record(LevelInfo, msg, fields) }

// Warn records a warn-level entry.
func (r *Recorder) Warn(msg string, fields ...Field) { r.record(LevelWarn, msg, fields) }

// Error records an error-level entry.
func (r *Recorder) Error(msg string, fields ...Field) { r.record(LevelError, msg, fields) }

func (r *Recorder) record(level Level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
}

// Entries returns a copy of all recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry{}, r.entries...)
}

// Messages returns the messages of all recorded entries, in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.entries))
	for i, e := range r.entries {
		msgs[i] = e.Msg
	}
	return msgs
}

// Contains reports whether any recorded message contains substr.
func (r *Recorder) Contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// ContainsLevel reports whether any entry at the given level contains substr.
func (r *Recorder) ContainsLevel(level Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}
