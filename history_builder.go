package redo

import (
	"time"

	"github.com/ygrebnov/redo/metrics"
)

// HistoryBuilder accumulates configuration for a History, mirroring
// RecordBuilder: the same fluent chain, since a History is built around an
// internal Record configured the same way.
type HistoryBuilder[R any, C Command[R]] struct {
	cfg recordConfig
}

func newHistoryBuilder[R any, C Command[R]]() HistoryBuilder[R, C] {
	return HistoryBuilder[R, C]{cfg: defaultRecordConfig()}
}

// NewHistoryBuilder returns a builder for a History.
func NewHistoryBuilder[R any, C Command[R]]() HistoryBuilder[R, C] {
	return newHistoryBuilder[R, C]()
}

// Capacity sets the initial storage capacity hint for the root branch.
func (b HistoryBuilder[R, C]) Capacity(capacity int) HistoryBuilder[R, C] {
	b.cfg.capacity = capacity
	return b
}

// Limit sets the bound on the number of commands any single branch keeps.
func (b HistoryBuilder[R, C]) Limit(limit int) HistoryBuilder[R, C] {
	if limit < 0 {
		panic(Namespace + ": limit must be >= 0")
	}
	b.cfg.limit = limit
	return b
}

// Signals registers the observer callback invoked on every state change,
// including branch switches (SignalRoot).
func (b HistoryBuilder[R, C]) Signals(f func(Signal)) HistoryBuilder[R, C] {
	b.cfg.signals = f
	return b
}

// Timestamps enables or disables stamping each command with the time it was
// applied. Required for GoToTime.
func (b HistoryBuilder[R, C]) Timestamps(enabled bool) HistoryBuilder[R, C] {
	b.cfg.timestamps = enabled
	return b
}

// Clock overrides the time source used when timestamps are enabled.
func (b HistoryBuilder[R, C]) Clock(now func() time.Time) HistoryBuilder[R, C] {
	b.cfg.clock = now
	return b
}

// Metrics registers an instrumentation provider. Defaults to a no-op
// provider when unset.
func (b HistoryBuilder[R, C]) Metrics(p metrics.Provider) HistoryBuilder[R, C] {
	b.cfg.metrics = p
	return b
}

// Build constructs the History over receiver, with a single root branch (id
// 0) holding the receiver.
func (b HistoryBuilder[R, C]) Build(receiver R) *History[R, C] {
	rec := NewRecordBuilder[R, C]().
		Capacity(b.cfg.capacity).
		Limit(b.cfg.limit).
		Signals(b.cfg.signals).
		Timestamps(b.cfg.timestamps).
		Clock(b.cfg.clock).
		Metrics(b.cfg.metrics).
		Build(receiver)

	h := &History[R, C]{
		current: rec,
		signals: b.cfg.signals,
		metrics: b.cfg.metrics,
	}
	h.init()
	return h
}

func (b HistoryBuilder[R, C]) build(receiver R) *History[R, C] { return b.Build(receiver) }
