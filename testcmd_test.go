package redo

import "errors"

// buffer is the test receiver: a text buffer, as spec.md's end-to-end
// scenarios use (Add(c) appends c, undo removes last; Del removes last,
// undo re-appends).
type buffer struct {
	text string
}

type opKind int

const (
	opAdd opKind = iota
	opDel
)

// charOp is a single tagged-variant command covering both Add and Del, so
// a single Record[buffer, *charOp] instance can exercise merge and
// annulment between the two kinds (spec.md §9 "tagged-variant enum for
// dynamic command sets").
type charOp struct {
	kind opKind
	add  string // Add payload
	del  byte   // filled by Apply for Del, consumed by Undo
}

func addOp(s string) *charOp { return &charOp{kind: opAdd, add: s} }
func delOp() *charOp         { return &charOp{kind: opDel} }

func (c *charOp) Apply(buf *buffer) error {
	switch c.kind {
	case opAdd:
		buf.text += c.add
	case opDel:
		n := len(buf.text)
		if n == 0 {
			return errors.New("buffer is empty")
		}
		c.del = buf.text[n-1]
		buf.text = buf.text[:n-1]
	}
	return nil
}

func (c *charOp) Undo(buf *buffer) error {
	switch c.kind {
	case opAdd:
		buf.text = buf.text[:len(buf.text)-len(c.add)]
	case opDel:
		buf.text += string(c.del)
	}
	return nil
}

// Merge concatenates consecutive Add operations, and lets a Del immediately
// following an Add shrink (or, if exhausted, annul) that Add, giving the
// test suite both a MergeYes and a MergeAnnul scenario from one command
// type.
func (c *charOp) Merge(next *charOp) Merge[*charOp] {
	switch {
	case c.kind == opAdd && next.kind == opAdd:
		c.add += next.add
		return MergeResultYes[*charOp]()
	case c.kind == opAdd && next.kind == opDel && len(c.add) > 0:
		c.add = c.add[:len(c.add)-1]
		if c.add == "" {
			return MergeResultAnnul[*charOp]()
		}
		return MergeResultYes[*charOp]()
	default:
		return MergeResultNo[*charOp](next)
	}
}

func (c *charOp) String() string {
	if c.kind == opAdd {
		return "add:" + c.add
	}
	return "del"
}

// plainOp is the same Add/Del shape as charOp but implements no Merger, for
// scenarios that require applies to never merge (spec.md §8 scenarios 1, 2,
// and 4, as opposed to scenario 3's explicitly merging Add).
type plainOp struct {
	kind opKind
	add  string
	del  byte
}

func plainAdd(s string) *plainOp { return &plainOp{kind: opAdd, add: s} }
func plainDel() *plainOp         { return &plainOp{kind: opDel} }

func (p *plainOp) Apply(buf *buffer) error {
	switch p.kind {
	case opAdd:
		buf.text += p.add
	case opDel:
		n := len(buf.text)
		if n == 0 {
			return errors.New("buffer is empty")
		}
		p.del = buf.text[n-1]
		buf.text = buf.text[:n-1]
	}
	return nil
}

func (p *plainOp) Undo(buf *buffer) error {
	switch p.kind {
	case opAdd:
		buf.text = buf.text[:len(buf.text)-len(p.add)]
	case opDel:
		buf.text += string(p.del)
	}
	return nil
}

func (p *plainOp) String() string {
	if p.kind == opAdd {
		return "add:" + p.add
	}
	return "del"
}

// failingOp always fails Apply, to exercise the Error[C] path.
type failingOp struct{}

func (failingOp) Apply(*buffer) error { return errors.New("boom") }
func (failingOp) Undo(*buffer) error  { return nil }

// countingRedo implements Redoer so its Redo (not Apply) is used on redo.
type countingRedo struct {
	redone int
}

func (c *countingRedo) Apply(buf *buffer) error { buf.text += "x"; return nil }
func (c *countingRedo) Undo(buf *buffer) error  { buf.text = buf.text[:len(buf.text)-1]; return nil }
func (c *countingRedo) Redo(buf *buffer) error {
	c.redone++
	buf.text += "x"
	return nil
}
