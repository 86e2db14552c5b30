package redo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistoryBuilder_Defaults(t *testing.T) {
	h := NewHistory[buffer, *plainOp](buffer{})
	require.Equal(t, 0, h.Limit())
	require.Equal(t, uint64(0), h.Root())
	require.True(t, h.IsEmpty())
	require.True(t, h.IsSaved())
}

func TestHistoryBuilder_Chaining(t *testing.T) {
	var got []Signal
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	h := NewHistoryBuilder[buffer, *plainOp]().
		Capacity(4).
		Limit(3).
		Signals(func(s Signal) { got = append(got, s) }).
		Timestamps(true).
		Clock(func() time.Time { return fixed }).
		Build(buffer{})

	require.Equal(t, 3, h.Limit())
	require.NoError(t, h.Apply(plainAdd("A")))
	require.NotEmpty(t, got)

	var entry Meta[*plainOp]
	for e := range h.current.Entries() {
		entry = e
	}
	require.NotNil(t, entry.Timestamp)
	require.True(t, entry.Timestamp.Equal(fixed))
}

func TestHistoryBuilder_LimitPanicsOnNegative(t *testing.T) {
	require.PanicsWithValue(t, Namespace+": limit must be >= 0", func() {
		NewHistoryBuilder[buffer, *plainOp]().Limit(-1)
	})
}

func TestHistoryBuilder_MetricsDefaultsToNoop(t *testing.T) {
	h := NewHistory[buffer, *plainOp](buffer{})
	require.NoError(t, h.Apply(plainAdd("A")))
}
