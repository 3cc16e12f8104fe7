// Package chart renders report sections: charts drawn with gonum/plot, an HTML page
// that embeds them, and a console summary.
package chart

import (
	"errors"
	"fmt"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Sink receives report sections in display order.
type Sink interface {
	Write(s domain.Section) error
	Close() error
}

// Manager fans sections out to several sinks.
type Manager struct {
	sinks []Sink
}

func NewManager(sinks ...Sink) *Manager {
	return &Manager{sinks: sinks}
}

func (m *Manager) AddSink(s Sink) error {
	if s == nil {
		return fmt.Errorf("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

// Write hands s to every sink, even when an earlier one fails.
func (m *Manager) Write(s domain.Section) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Write(s); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", sink, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to sinks: %w", errors.Join(errs...))
	}
	return nil
}

func (m *Manager) Close() error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", sink, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sinks: %w", errors.Join(errs...))
	}
	return nil
}
