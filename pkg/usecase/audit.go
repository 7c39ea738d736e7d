package usecase

import (
	"context"
	"sync"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// AuditSink receives one event per engine decision against the target
// store. Injected so tests can assert on exactly what the engine did;
// the default sink just logs.
type AuditSink interface {
	Record(ctx context.Context, event model.AuditEvent)
}

// LogSink writes audit events to the context logger
type LogSink struct{}

// NewLogSink creates the default audit sink
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Record logs the event
func (s *LogSink) Record(ctx context.Context, event model.AuditEvent) {
	logger := ctxlog.From(ctx)
	args := []any{
		"entity", event.Entity,
		"action", event.Action,
		"external_id", event.ExternalID,
		"page_id", event.PageID,
	}
	if len(event.Fields) > 0 {
		args = append(args, "fields", event.Fields)
	}
	if event.Err != "" {
		args = append(args, "error", event.Err)
	}
	logger.Debug("audit", args...)
}

// MemorySink accumulates audit events in memory for test assertions
type MemorySink struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

// NewMemorySink creates an in-memory audit sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record appends the event
func (s *MemorySink) Record(_ context.Context, event model.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of all recorded events in order
func (s *MemorySink) Events() []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]model.AuditEvent, len(s.events))
	copy(events, s.events)
	return events
}

// ByAction returns all recorded events with the given action
func (s *MemorySink) ByAction(action model.AuditAction) []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.AuditEvent
	for _, event := range s.events {
		if event.Action == action {
			matched = append(matched, event)
		}
	}
	return matched
}
