// Package redo provides reversible state management: a linear undo/redo
// stack (Record) and a branching history (History) built on top of it.
//
// # Commands
//
// Callers implement Command[R] for each operation that mutates a receiver
// R: Apply moves the receiver forward, Undo reverses it. Redo and Merge are
// optional capabilities (Redoer[R], Merger[C]); when a command does not
// implement them, the engine falls back to calling Apply again and to never
// merging, respectively.
//
// # Record
//
//	r := redo.NewRecord[Buffer, *Insert](buf)
//	_, err := r.Apply(&Insert{At: 0, Text: "hi"})
//	r.Undo()
//	r.Redo()
//
// NewRecordBuilder configures capacity, a length limit, timestamps, an
// observer callback, and a metrics provider before the receiver is supplied.
//
// # History
//
// History wraps a Record as its current branch. Applying a command while
// the cursor is not at the tip diverges a new branch instead of discarding
// the abandoned commands; GoTo walks the resulting tree to reach any
// reachable position.
//
// # Signals
//
// Both engines accept a single observer callback invoked synchronously on
// every edge-triggered change in undo/redo availability, saved state,
// cursor position, or (History only) active branch.
package redo
