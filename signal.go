package redo

// SignalKind tags the kind of change a Signal reports.
type SignalKind uint8

const (
	// SignalUndo reports a change in whether the engine can undo.
	SignalUndo SignalKind = iota
	// SignalRedo reports a change in whether the engine can redo.
	SignalRedo
	// SignalSaved reports the receiver entering or leaving its saved state.
	SignalSaved
	// SignalCursor reports the cursor moving within the current branch. It
	// is emitted after every successful Apply, even when the effective
	// cursor is unchanged due to a merge or an annulment.
	SignalCursor
	// SignalRoot reports the active branch changing. Only emitted by
	// History.
	SignalRoot
)

// Signal is a single tagged event published to the engine's observer. Only
// one observer callback exists per engine (spec.md §4.2, §9); composing
// several observers is the caller's problem.
//
// For SignalCursor, Old/New carry the previous/new cursor. For SignalRoot,
// Old/New carry the previous/new branch id narrowed to int: branch ids are
// allocated from a monotonic uint64 counter, but no real history tree
// approaches the int range, and narrowing keeps Signal one flat struct
// instead of a second type for the Root case.
type Signal struct {
	Kind SignalKind
	On   bool // valid when Kind is SignalUndo, SignalRedo, or SignalSaved
	Old  int  // valid when Kind is SignalCursor or SignalRoot
	New  int  // valid when Kind is SignalCursor or SignalRoot
}

func signalUndo(on bool) Signal  { return Signal{Kind: SignalUndo, On: on} }
func signalRedo(on bool) Signal  { return Signal{Kind: SignalRedo, On: on} }
func signalSaved(on bool) Signal { return Signal{Kind: SignalSaved, On: on} }

func signalCursor(old, new int) Signal {
	return Signal{Kind: SignalCursor, Old: old, New: new}
}

func signalRoot(old, new uint64) Signal {
	return Signal{Kind: SignalRoot, Old: int(old), New: int(new)}
}

// At is a position in a history tree: a branch id and a cursor within it.
type At struct {
	Branch uint64
	Cursor int
}
