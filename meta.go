package redo

import "time"

// Meta pairs a command with an optional timestamp. The engine stores
// Meta[C] internally (never C directly) so a wall-clock instant can be
// attached without requiring every command type to carry one itself; the
// Apply/Undo/Redo/Merge forwarding spec.md §4.1 describes for Meta is
// realized inline inside Record/History rather than via methods on Meta
// itself, since Go has no equivalent of Rust's blanket
// `impl Command<R> for Meta<C>`. Meta is still exported so callers who read
// back Record.Entries()/History timestamps see the same pairing.
type Meta[C any] struct {
	Command   C
	Timestamp *time.Time
}

func newMeta[C any](cmd C, now func() time.Time) Meta[C] {
	m := Meta[C]{Command: cmd}
	if now != nil {
		t := now()
		m.Timestamp = &t
	}
	return m
}
