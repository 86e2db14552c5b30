package redo

// branch is a detached side-history: the suffix of commands that was
// discarded from the root Record when an apply occurred at a non-tip
// cursor, plus the point on some other branch it diverged from (spec.md
// §3, §4.5). The root branch itself is never represented by a branch
// value; its commands live inside History.current.
type branch[C any] struct {
	Parent   At
	Commands []Meta[C]
}
