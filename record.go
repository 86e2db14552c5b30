package redo

import (
	"fmt"
	"iter"
	"time"

	"github.com/ygrebnov/redo/metrics"
)

// Record is a linear undo/redo engine: a single stack of commands addressed
// by a movable cursor (spec.md §3, §4.4).
//
// C is expected to be a pointer type (e.g. *AddChar) so that Apply, Undo,
// and Merge can mutate a command's internal state in place, the way Rust's
// `&mut self` does in the source this package is modeled on.
type Record[R any, C Command[R]] struct {
	commands []Meta[C]
	receiver R
	cursor   int
	limit    int
	saved    *int
	signals  func(Signal)

	now func() time.Time // nil disables timestamps

	metrics      metrics.Provider
	countApplies metrics.Counter
	countUndos   metrics.Counter
	countRedos   metrics.Counter
	countMerges  metrics.UpDownCounter
	countAnnuls  metrics.UpDownCounter
	gaugeLength  metrics.UpDownCounter
}

// NewRecord returns a new Record over receiver with default configuration
// (unbounded, saved at cursor 0, no signals, no timestamps, no metrics). Use
// NewRecordBuilder for configuration.
func NewRecord[R any, C Command[R]](receiver R) *Record[R, C] {
	return newRecordBuilder[R, C]().build(receiver)
}

func (r *Record[R, C]) init() {
	if r.metrics == nil {
		r.metrics = metrics.NewNoopProvider()
	}
	r.countApplies = r.metrics.Counter("redo.applies")
	r.countUndos = r.metrics.Counter("redo.undos")
	r.countRedos = r.metrics.Counter("redo.redos")
	r.countMerges = r.metrics.UpDownCounter("redo.merges")
	r.countAnnuls = r.metrics.UpDownCounter("redo.annuls")
	r.gaugeLength = r.metrics.UpDownCounter("redo.length")
	zero := 0
	r.saved = &zero
}

// Len returns the number of commands in the record.
func (r *Record[R, C]) Len() int { return len(r.commands) }

// IsEmpty reports whether the record has no commands.
func (r *Record[R, C]) IsEmpty() bool { return len(r.commands) == 0 }

// Limit returns the record's bound on length, or 0 for unbounded.
func (r *Record[R, C]) Limit() int { return r.limit }

// Capacity returns the underlying storage capacity hint.
func (r *Record[R, C]) Capacity() int { return cap(r.commands) }

// CanUndo reports whether Undo has anything to do.
func (r *Record[R, C]) CanUndo() bool { return r.cursor > 0 }

// CanRedo reports whether Redo has anything to do.
func (r *Record[R, C]) CanRedo() bool { return r.cursor < len(r.commands) }

// IsSaved reports whether the receiver is currently in its saved state.
func (r *Record[R, C]) IsSaved() bool {
	return r.saved != nil && *r.saved == r.cursor
}

// AsReceiver returns a borrow of the receiver.
func (r *Record[R, C]) AsReceiver() *R { return &r.receiver }

// IntoReceiver consumes the record and returns the receiver. The record must
// not be used afterward.
func (r *Record[R, C]) IntoReceiver() R { return r.receiver }

// Cursor returns the current cursor position.
func (r *Record[R, C]) Cursor() int { return r.cursor }

// emit invokes the observer if one is registered.
func (r *Record[R, C]) emit(s Signal) {
	if r.signals != nil {
		r.signals(s)
	}
}

// SetSaved marks the receiver as saved at the current cursor.
func (r *Record[R, C]) SetSaved() {
	wasSaved := r.IsSaved()
	cur := r.cursor
	r.saved = &cur
	if !wasSaved {
		r.emit(signalSaved(true))
	}
}

// SetUnsaved clears the saved marker.
func (r *Record[R, C]) SetUnsaved() {
	wasSaved := r.IsSaved()
	r.saved = nil
	if wasSaved {
		r.emit(signalSaved(false))
	}
}

// Clear removes all commands without undoing them, resetting the cursor to
// 0 and the saved marker to 0. The receiver is left untouched.
func (r *Record[R, C]) Clear() {
	couldUndo := r.CanUndo()
	couldRedo := r.CanRedo()
	wasSaved := r.IsSaved()

	old := r.cursor
	oldLen := len(r.commands)
	r.commands = nil
	r.cursor = 0
	zero := 0
	r.saved = &zero

	if old != 0 {
		r.emit(signalCursor(old, 0))
	}
	if couldUndo {
		r.emit(signalUndo(false))
	}
	if couldRedo {
		r.emit(signalRedo(false))
	}
	if !wasSaved {
		r.emit(signalSaved(true))
	}
	r.gaugeLength.Add(int64(-oldLen))
}

// Apply executes cmd against the receiver and pushes it onto the record,
// merging with the current top command when possible (spec.md §4.4). On
// success it returns the commands discarded from the redo tail as a lazy
// sequence, so the caller may reuse them. On failure it returns the command,
// unconsumed, wrapped in *Error[C].
func (r *Record[R, C]) Apply(cmd C) (iter.Seq[C], error) {
	discardedMeta, err := r.applyInternal(cmd)
	if err != nil {
		return nil, err
	}
	discarded := make([]C, len(discardedMeta))
	for i, m := range discardedMeta {
		discarded[i] = m.Command
	}
	return sliceSeq(discarded), nil
}

// applyInternal is Apply's implementation, returning the discarded tail as
// full Meta entries (command plus timestamp) rather than bare commands.
// History stores the tail as a parked branch and keeps the timestamps there
// for GoToTime; Record's own public Apply only needs the commands themselves.
func (r *Record[R, C]) applyInternal(cmd C) ([]Meta[C], error) {
	if err := cmd.Apply(&r.receiver); err != nil {
		return nil, &Error[C]{Command: cmd, Err: err}
	}

	old := r.cursor
	couldUndo := r.CanUndo()
	couldRedo := r.CanRedo()
	wasSaved := r.IsSaved()

	discardedMeta := make([]Meta[C], len(r.commands)-r.cursor)
	copy(discardedMeta, r.commands[r.cursor:])
	r.commands = r.commands[:r.cursor]
	r.gaugeLength.Add(int64(-len(discardedMeta)))

	if r.saved != nil && *r.saved > r.cursor {
		r.saved = nil
	}

	toPush := cmd
	pushed := true
	if n := len(r.commands); n > 0 && !wasSaved {
		top := r.commands[n-1].Command
		switch result := mergeOrReject(top, cmd); result.Kind {
		case MergeYes:
			pushed = false
			r.countMerges.Add(1)
		case MergeAnnul:
			r.commands = r.commands[:n-1]
			r.cursor--
			pushed = false
			r.countAnnuls.Add(1)
			r.gaugeLength.Add(-1)
		default:
			toPush = result.Command
		}
	}

	if pushed {
		if r.limit != 0 && r.cursor == r.limit {
			r.commands = r.commands[1:]
			r.gaugeLength.Add(-1)
			if r.saved != nil {
				if *r.saved == 0 {
					r.saved = nil
				} else {
					*r.saved--
				}
			}
		} else {
			r.cursor++
		}
		r.commands = append(r.commands, newMeta(toPush, r.now))
		r.gaugeLength.Add(1)
	}

	r.emit(signalCursor(old, r.cursor))
	if couldRedo {
		r.emit(signalRedo(false))
	}
	if !couldUndo {
		r.emit(signalUndo(true))
	}
	if wasSaved {
		r.emit(signalSaved(false))
	}
	r.countApplies.Add(1)

	return discardedMeta, nil
}

// Undo reverses the active command and moves the cursor back one step.
// Returns false if there is nothing to undo.
func (r *Record[R, C]) Undo() (bool, error) {
	if !r.CanUndo() {
		return false, nil
	}

	cmd := r.commands[r.cursor-1].Command
	if err := cmd.Undo(&r.receiver); err != nil {
		return true, err
	}

	wasSaved := r.IsSaved()
	old := r.cursor
	r.cursor--
	length := len(r.commands)
	isSaved := r.IsSaved()

	r.emit(signalCursor(old, r.cursor))
	if old == length {
		r.emit(signalRedo(true))
	}
	if old == 1 {
		r.emit(signalUndo(false))
	}
	if wasSaved != isSaved {
		r.emit(signalSaved(isSaved))
	}
	r.countUndos.Add(1)
	return true, nil
}

// Redo reapplies the next command and moves the cursor forward one step.
// Returns false if there is nothing to redo.
func (r *Record[R, C]) Redo() (bool, error) {
	if !r.CanRedo() {
		return false, nil
	}

	cmd := r.commands[r.cursor].Command
	if err := redoOrApply[R, C](cmd, &r.receiver); err != nil {
		return true, err
	}

	wasSaved := r.IsSaved()
	old := r.cursor
	r.cursor++
	length := len(r.commands)
	isSaved := r.IsSaved()

	r.emit(signalCursor(old, r.cursor))
	if old == length-1 {
		r.emit(signalRedo(false))
	}
	if old == 0 {
		r.emit(signalUndo(true))
	}
	if wasSaved != isSaved {
		r.emit(signalSaved(isSaved))
	}
	r.countRedos.Add(1)
	return true, nil
}

// Commands iterates the record's commands in application order.
func (r *Record[R, C]) Commands() iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, m := range r.commands {
			if !yield(m.Command) {
				return
			}
		}
	}
}

// Entries iterates the record's Meta entries (command plus optional
// timestamp) in application order.
func (r *Record[R, C]) Entries() iter.Seq[Meta[C]] {
	return func(yield func(Meta[C]) bool) {
		for _, m := range r.commands {
			if !yield(m) {
				return
			}
		}
	}
}

// ToUndoString returns the description of the command the next Undo call
// would reverse, when C implements fmt.Stringer.
func ToUndoString[R any, C interface {
	Command[R]
	fmt.Stringer
}](r *Record[R, C]) (string, bool) {
	if !r.CanUndo() {
		return "", false
	}
	return r.commands[r.cursor-1].Command.String(), true
}

// ToRedoString returns the description of the command the next Redo call
// would apply, when C implements fmt.Stringer.
func ToRedoString[R any, C interface {
	Command[R]
	fmt.Stringer
}](r *Record[R, C]) (string, bool) {
	if !r.CanRedo() {
		return "", false
	}
	return r.commands[r.cursor].Command.String(), true
}

func sliceSeq[C any](items []C) iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	}
}
