package redo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	e := &Error[*plainOp]{Command: plainAdd("a"), Err: cause}

	require.Equal(t, "underlying", e.Error())
	require.ErrorIs(t, e, cause)
	require.Same(t, cause, errors.Unwrap(e))
}

func TestError_CarriesRejectedCommand(t *testing.T) {
	cause := errors.New("rejected")
	cmd := plainAdd("a")
	e := &Error[*plainOp]{Command: cmd, Err: cause}

	require.Same(t, cmd, e.Command)
}

func TestError_FormatVerbs(t *testing.T) {
	e := &Error[*plainOp]{Command: plainAdd("a"), Err: errors.New("bad")}

	require.Equal(t, "bad", fmt.Sprintf("%s", e))
	require.Equal(t, `"bad"`, fmt.Sprintf("%q", e))
	require.Equal(t, "command rejected: bad", fmt.Sprintf("%+v", e))
	require.Equal(t, "bad", fmt.Sprintf("%v", e))
}
