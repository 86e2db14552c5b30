package redo

import (
	"time"

	"github.com/ygrebnov/redo/metrics"
)

// recordConfig holds Record configuration, following the teacher's
// config.go/defaults.go split: a private config struct plus a
// defaultRecordConfig() constructor the builder starts from.
type recordConfig struct {
	capacity   int
	limit      int
	signals    func(Signal)
	timestamps bool
	clock      func() time.Time
	metrics    metrics.Provider
}

func defaultRecordConfig() recordConfig {
	return recordConfig{
		capacity:   0,
		limit:      0,
		signals:    nil,
		timestamps: false,
		clock:      time.Now,
		metrics:    nil,
	}
}

// RecordBuilder accumulates configuration for a Record, mirroring the
// original Rust RecordBuilder's fluent chain
// (Record::builder().capacity(2).limit(2).default()).
type RecordBuilder[R any, C Command[R]] struct {
	cfg recordConfig
}

func newRecordBuilder[R any, C Command[R]]() RecordBuilder[R, C] {
	return RecordBuilder[R, C]{cfg: defaultRecordConfig()}
}

// NewRecordBuilder returns a builder for a Record.
func NewRecordBuilder[R any, C Command[R]]() RecordBuilder[R, C] {
	return newRecordBuilder[R, C]()
}

// Capacity sets the initial storage capacity hint.
func (b RecordBuilder[R, C]) Capacity(capacity int) RecordBuilder[R, C] {
	b.cfg.capacity = capacity
	return b
}

// Limit sets the bound on the number of commands the record keeps. 0 (the
// default) means unbounded; once the bound is reached, applying a new
// command evicts the oldest one.
func (b RecordBuilder[R, C]) Limit(limit int) RecordBuilder[R, C] {
	if limit < 0 {
		panic(Namespace + ": limit must be >= 0")
	}
	b.cfg.limit = limit
	return b
}

// Signals registers the observer callback invoked on every state change.
func (b RecordBuilder[R, C]) Signals(f func(Signal)) RecordBuilder[R, C] {
	b.cfg.signals = f
	return b
}

// Timestamps enables or disables stamping each command with the time it was
// applied. Disabled by default.
func (b RecordBuilder[R, C]) Timestamps(enabled bool) RecordBuilder[R, C] {
	b.cfg.timestamps = enabled
	return b
}

// Clock overrides the time source used when timestamps are enabled. Tests
// use this to inject a deterministic clock; production code leaves it at
// the default (time.Now).
func (b RecordBuilder[R, C]) Clock(now func() time.Time) RecordBuilder[R, C] {
	b.cfg.clock = now
	return b
}

// Metrics registers an instrumentation provider. Defaults to a no-op
// provider when unset.
func (b RecordBuilder[R, C]) Metrics(p metrics.Provider) RecordBuilder[R, C] {
	b.cfg.metrics = p
	return b
}

// Build constructs the Record over receiver.
func (b RecordBuilder[R, C]) Build(receiver R) *Record[R, C] {
	r := &Record[R, C]{
		commands: make([]Meta[C], 0, b.cfg.capacity),
		receiver: receiver,
		limit:    b.cfg.limit,
		signals:  b.cfg.signals,
		metrics:  b.cfg.metrics,
	}
	if b.cfg.timestamps {
		r.now = b.cfg.clock
	}
	r.init()
	return r
}

func (b RecordBuilder[R, C]) build(receiver R) *Record[R, C] { return b.Build(receiver) }
