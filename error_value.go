package redo

import "fmt"

// Error is returned by Record.Apply/History.Apply when a command's Apply
// method fails. It carries the rejected command back to the caller
// alongside the command-defined error, so the caller can recover and retry
// without reconstructing the command (spec.md §4.3), the same
// correlate-the-failure-back-to-its-cause shape as the teacher's
// error_tagging.go taskTaggedError.
type Error[C any] struct {
	Command C
	Err     error
}

func (e *Error[C]) Error() string { return e.Err.Error() }

func (e *Error[C]) Unwrap() error { return e.Err }

func (e *Error[C]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "command rejected: %+v", e.Err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}
