package output

import (
	"errors"
	"fmt"
)

// Sink is a destination for scan output. Values written to it are either
// PlatformReport (one scored platform) or Event (run lifecycle markers);
// sinks ignore value kinds they do not render.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans every platform report and lifecycle event out to the sinks
// configured for the run (console, emit streams, files, Markdown report).
type Manager struct {
	sinks []Sink
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	if s == nil {
		return fmt.Errorf("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

// Write delivers v to every sink. A failing sink does not stop delivery to
// the others; all failures are joined into one error.
func (m *Manager) Write(v any) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(v); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to sinks: %w", errors.Join(errs...))
	}
	return nil
}

// Close closes every sink, even when earlier ones fail. Aggregate sinks
// (JSON array, Markdown report) render their output here, so Close must run
// after the run.finished event has been written.
func (m *Manager) Close() error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sinks: %w", errors.Join(errs...))
	}
	return nil
}
