package redo

import (
	"iter"
	"time"

	"github.com/ygrebnov/redo/metrics"
)

// History is a branching undo/redo engine: a tree of linear segments where
// diverging edits create new branches and GoTo traverses the tree to
// reconstitute any past state (spec.md §3, §4.5).
//
// The tree's current root lives fully expanded inside current, the way the
// teacher keeps a worker pool's live state in a single struct rather than a
// detached record; every other branch is parked in branches until GoTo
// splices it back in.
type History[R any, C Command[R]] struct {
	root     uint64
	origin   uint64 // the tree's first branch id, fixed for the engine's lifetime
	nextID   uint64
	current  *Record[R, C]
	branches map[uint64]*branch[C]
	saved    *At

	// rootParent is the point the current root itself diverged from, or nil
	// when the root is the tree's original origin. Needed so a later GoTo
	// can walk back up through a root that has already been swapped away
	// from once; spec.md's own History fields omit it because the
	// original root never needs to re-ascend past itself, but a general
	// multi-hop GoTo does.
	rootParent *At

	signals func(Signal)

	metrics       metrics.Provider
	countBranches metrics.Counter
}

// NewHistory returns a new History over receiver with default configuration.
// Use HistoryBuilder for configuration.
func NewHistory[R any, C Command[R]](receiver R) *History[R, C] {
	return newHistoryBuilder[R, C]().build(receiver)
}

func (h *History[R, C]) init() {
	if h.metrics == nil {
		h.metrics = metrics.NewNoopProvider()
	}
	h.countBranches = h.metrics.Counter("redo.history.branches")
	h.branches = make(map[uint64]*branch[C])
	h.origin = h.root
	h.nextID = h.root + 1
}

func (h *History[R, C]) emit(s Signal) {
	if h.signals != nil {
		h.signals(s)
	}
}

// Root returns the id of the currently active branch.
func (h *History[R, C]) Root() uint64 { return h.root }

// Len, IsEmpty, Limit, Capacity, CanUndo, CanRedo, AsReceiver, and
// IntoReceiver all delegate to the current branch's Record.
func (h *History[R, C]) Len() int        { return h.current.Len() }
func (h *History[R, C]) IsEmpty() bool   { return h.current.IsEmpty() }
func (h *History[R, C]) Limit() int      { return h.current.Limit() }
func (h *History[R, C]) Capacity() int   { return h.current.Capacity() }
func (h *History[R, C]) CanUndo() bool   { return h.current.CanUndo() }
func (h *History[R, C]) CanRedo() bool   { return h.current.CanRedo() }
func (h *History[R, C]) AsReceiver() *R  { return h.current.AsReceiver() }
func (h *History[R, C]) IntoReceiver() R { return h.current.IntoReceiver() }
func (h *History[R, C]) Cursor() int     { return h.current.Cursor() }

// IsSaved reports whether the receiver is in its saved state, on whichever
// branch that state currently lives on.
func (h *History[R, C]) IsSaved() bool {
	if h.saved != nil {
		return false // the saved position is parked on a different branch
	}
	return h.current.IsSaved()
}

// SetSaved marks the receiver as saved at the current position, on the
// current branch. Any saved position previously parked on another branch is
// discarded.
func (h *History[R, C]) SetSaved() {
	h.saved = nil
	h.current.SetSaved()
}

// SetUnsaved clears the saved marker, wherever it currently lives.
func (h *History[R, C]) SetUnsaved() {
	h.saved = nil
	h.current.SetUnsaved()
}

// Clear removes all commands from every branch, resetting to a single empty
// root. The receiver is left untouched.
func (h *History[R, C]) Clear() {
	h.current.Clear()
	h.branches = make(map[uint64]*branch[C])
	h.saved = nil
	h.rootParent = nil
	if h.root != h.origin {
		oldRoot := h.root
		h.root = h.origin
		h.emit(signalRoot(oldRoot, h.origin))
	}
}

// Apply executes cmd against the receiver through the current branch. If
// applying at a non-tip cursor discards a tail, that tail becomes a new
// branch instead of being lost (spec.md §4.5).
func (h *History[R, C]) Apply(cmd C) error {
	oldCursor := h.current.Cursor()
	oldRoot := h.root

	var tailSavedOffset *int
	if h.current.saved != nil && *h.current.saved > oldCursor {
		off := *h.current.saved - oldCursor
		tailSavedOffset = &off
	}

	discarded, err := h.current.applyInternal(cmd)
	if err != nil {
		return err
	}
	if len(discarded) == 0 {
		return nil
	}

	newID := h.nextID
	h.nextID++
	h.branches[newID] = &branch[C]{
		Parent:   At{Branch: oldRoot, Cursor: oldCursor},
		Commands: discarded,
	}
	h.countBranches.Add(1)

	if tailSavedOffset != nil {
		h.saved = &At{Branch: newID, Cursor: *tailSavedOffset}
	}
	return nil
}

// Undo reverses the active command on the current branch.
func (h *History[R, C]) Undo() (bool, error) { return h.current.Undo() }

// Redo reapplies the next command on the current branch.
func (h *History[R, C]) Redo() (bool, error) { return h.current.Redo() }

// Branches iterates the parent position of every non-root branch, for an
// external display layer to render the tree.
func (h *History[R, C]) Branches() iter.Seq2[uint64, At] {
	return func(yield func(uint64, At) bool) {
		for id, b := range h.branches {
			if !yield(id, b.Parent) {
				return
			}
		}
	}
}

// driveCursor moves the current branch's cursor to target by undoing or
// redoing one step at a time, stopping on the first error.
func (h *History[R, C]) driveCursor(target int) error {
	if target < 0 || target > h.current.Len() {
		return ErrNoTarget
	}
	for h.current.Cursor() > target {
		if _, err := h.current.Undo(); err != nil {
			return err
		}
	}
	for h.current.Cursor() < target {
		ok, err := h.current.Redo()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

// ancestors returns the chain of branch ids from id up to and including the
// tree's fixed origin, id itself first. Walking stops at origin rather than
// at "whichever node currently has no parent", because swapRoot re-anchors
// the old root's Parent on every swap: after a root swap, the node that used
// to be the origin is no longer parentless, so a walk that only checks for a
// nil parent can cycle between two re-anchored nodes forever. origin is set
// once at construction and never mutated, so it is always a safe stopping
// point regardless of how many swaps have happened since.
func (h *History[R, C]) ancestors(id uint64) []uint64 {
	chain := []uint64{id}
	cur := id
	for cur != h.origin {
		var next uint64
		switch {
		case cur == h.root:
			next = h.rootParent.Branch
		default:
			next = h.branches[cur].Parent.Branch
		}
		chain = append(chain, next)
		cur = next
	}
	return chain
}

// swapRoot makes newRootID the current root, splicing its stored commands
// in at hopCursor and parking the old root's abandoned tail as a new branch
// entry under its old id. This is the branch-swap primitive (spec.md
// §4.5 set_root), generalized to work from either direction: ascending to
// an ancestor or descending into a child both reduce to one swapRoot call.
func (h *History[R, C]) swapRoot(newRootID uint64, hopCursor int) error {
	newRootBranch, ok := h.branches[newRootID]
	if !ok {
		return ErrNoSuchBranch
	}

	if err := h.driveCursor(hopCursor); err != nil {
		return err
	}

	oldRootID := h.root
	tail := make([]Meta[C], len(h.current.commands)-hopCursor)
	copy(tail, h.current.commands[hopCursor:])
	h.current.commands = h.current.commands[:hopCursor]

	var detachedSavedOffset *int
	if h.current.saved != nil && *h.current.saved > hopCursor {
		off := *h.current.saved - hopCursor
		detachedSavedOffset = &off
		h.current.saved = nil
	}

	delete(h.branches, newRootID)
	h.branches[oldRootID] = &branch[C]{
		Parent:   At{Branch: newRootID, Cursor: hopCursor},
		Commands: tail,
	}
	if detachedSavedOffset != nil {
		h.saved = &At{Branch: oldRootID, Cursor: *detachedSavedOffset}
	}

	h.current.gaugeLength.Add(int64(len(newRootBranch.Commands) - len(tail)))
	h.current.commands = append(h.current.commands, newRootBranch.Commands...)

	if h.saved != nil && h.saved.Branch == newRootID {
		newSaved := hopCursor + h.saved.Cursor
		h.current.saved = &newSaved
		h.saved = nil
	}

	if newRootID == h.origin {
		h.rootParent = nil
	} else {
		newRootParent := newRootBranch.Parent
		h.rootParent = &newRootParent
	}
	h.root = newRootID
	h.emit(signalRoot(oldRootID, newRootID))
	return nil
}

func (h *History[R, C]) ascend() error {
	if h.rootParent == nil {
		return ErrNoSuchBranch
	}
	return h.swapRoot(h.rootParent.Branch, h.rootParent.Cursor)
}

func (h *History[R, C]) descend(childID uint64) error {
	childBranch, ok := h.branches[childID]
	if !ok {
		return ErrNoSuchBranch
	}
	return h.swapRoot(childID, childBranch.Parent.Cursor)
}

// GoTo moves the receiver to the position identified by (branch, cursor),
// computing and executing the tree path between the current position and
// the target (spec.md §4.5 go_to). If branch is not the current root, the
// walk ascends from the current root to the lowest common ancestor of the
// current root and the target branch, then descends to the target,
// swapping one branch at a time, before driving the cursor to its final
// value.
func (h *History[R, C]) GoTo(branch uint64, cursor int) error {
	if branch == h.root {
		return h.driveCursor(cursor)
	}
	if _, ok := h.branches[branch]; !ok {
		return ErrNoSuchBranch
	}

	targetChain := h.ancestors(branch)
	rootChain := h.ancestors(h.root)

	rootSet := make(map[uint64]bool, len(rootChain))
	for _, id := range rootChain {
		rootSet[id] = true
	}

	lca, found := uint64(0), false
	for _, id := range targetChain {
		if rootSet[id] {
			lca, found = id, true
			break
		}
	}
	if !found {
		return ErrNoSuchBranch
	}

	for h.root != lca {
		if err := h.ascend(); err != nil {
			return err
		}
	}

	var descendPath []uint64
	for _, id := range targetChain {
		if id == lca {
			break
		}
		descendPath = append(descendPath, id)
	}
	for i, j := 0, len(descendPath)-1; i < j; i, j = i+1, j-1 {
		descendPath[i], descendPath[j] = descendPath[j], descendPath[i]
	}
	for _, id := range descendPath {
		if err := h.descend(id); err != nil {
			return err
		}
	}

	return h.driveCursor(cursor)
}

// GoToTime finds the command whose timestamp is closest to t, searching the
// current branch and every parked branch, and calls GoTo with the position
// just after that command. Requires timestamps to be enabled; otherwise
// returns ErrNoTimestamps. The choice is by distance alone: the commands
// around the chosen position need not bracket t. On equal distances the
// first candidate found wins; the current branch is searched first, in
// cursor order, and parked branches after it in no defined order.
func (h *History[R, C]) GoToTime(t time.Time) error {
	if h.current.now == nil {
		return ErrNoTimestamps
	}

	type candidate struct {
		branch uint64
		cursor int
		at     time.Time
	}
	var best *candidate
	consider := func(branch uint64, cursor int, at *time.Time) {
		if at == nil {
			return
		}
		d := at.Sub(t)
		if d < 0 {
			d = -d
		}
		if best == nil {
			best = &candidate{branch, cursor, *at}
			return
		}
		bd := best.at.Sub(t)
		if bd < 0 {
			bd = -bd
		}
		if d < bd {
			best = &candidate{branch, cursor, *at}
		}
	}

	for i, m := range h.current.commands {
		consider(h.root, i+1, m.Timestamp)
	}
	for id, b := range h.branches {
		for i, m := range b.Commands {
			consider(id, b.Parent.Cursor+i+1, m.Timestamp)
		}
	}

	if best == nil {
		return ErrNoTarget
	}
	return h.GoTo(best.branch, best.cursor)
}
