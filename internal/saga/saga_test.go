package saga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAllSteps(t *testing.T) {
	var ran []string
	err := Execute([]Step{
		{Name: "a", Run: func() error { ran = append(ran, "a"); return nil }},
		{Name: "b", Run: func() error { ran = append(ran, "b"); return nil }},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestExecuteCompensatesInReverse(t *testing.T) {
	var trace []string
	boom := errors.New("insert failed")

	err := Execute([]Step{
		{
			Name:       "create credential",
			Run:        func() error { trace = append(trace, "run:cred"); return nil },
			Compensate: func() error { trace = append(trace, "undo:cred"); return nil },
		},
		{
			Name:       "create vehicle",
			Run:        func() error { trace = append(trace, "run:veh"); return nil },
			Compensate: func() error { trace = append(trace, "undo:veh"); return nil },
		},
		{
			Name: "create profile",
			Run:  func() error { return boom },
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create profile")
	assert.Equal(t, []string{"run:cred", "run:veh", "undo:veh", "undo:cred"}, trace)
}

func TestExecuteNilCompensateSkipped(t *testing.T) {
	var undone bool
	err := Execute([]Step{
		{Name: "noop", Run: func() error { return nil }},
		{Name: "first", Run: func() error { return nil }, Compensate: func() error { undone = true; return nil }},
		{Name: "fails", Run: func() error { return errors.New("nope") }},
	})
	require.Error(t, err)
	assert.True(t, undone)
}

func TestExecuteCompensationFailureReported(t *testing.T) {
	err := Execute([]Step{
		{
			Name:       "cred",
			Run:        func() error { return nil },
			Compensate: func() error { return errors.New("delete denied") },
		},
		{Name: "veh", Run: func() error { return errors.New("insert failed") }},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
	assert.Contains(t, err.Error(), "delete denied")
}
