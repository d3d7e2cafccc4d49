package resilience

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errDisk  = errors.New("disk failed")
	errInput = errors.New("bad input")
)

func call(b *Breaker, err error) error {
	return b.Do(func() error { return err })
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		results       []error
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{Interval: time.Minute, Timeout: time.Minute},
			results:       []error{nil, nil, nil},
			expectedState: StateClosed,
		},
		{
			name: "opens after consecutive failures",
			settings: Settings{
				Interval: time.Minute,
				Timeout:  time.Minute,
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 3
				},
			},
			results:       []error{errDisk, errDisk, errDisk},
			expectedState: StateOpen,
		},
		{
			name: "success resets the streak",
			settings: Settings{
				Interval: time.Minute,
				Timeout:  time.Minute,
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 2
				},
			},
			results:       []error{errDisk, nil, errDisk},
			expectedState: StateClosed,
		},
		{
			name: "unclassified errors do not count",
			settings: Settings{
				Interval: time.Minute,
				Timeout:  time.Minute,
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 1
				},
				IsFailure: func(err error) bool { return errors.Is(err, errDisk) },
			},
			results:       []error{errInput, errInput, errInput},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := New("test", tt.settings)
			for _, res := range tt.results {
				assert.Equal(t, res, call(breaker, res))
			}
			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := New("test", Settings{Interval: time.Minute, Timeout: time.Minute})

	require.NoError(t, call(breaker, nil))
	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)

	assert.ErrorIs(t, call(breaker, errDisk), errDisk)
	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenRejectsWithoutCalling(t *testing.T) {
	breaker := New("test", Settings{
		Timeout:     time.Minute,
		ReadyToTrip: func(counts Counts) bool { return counts.ConsecutiveFailures >= 1 },
	})
	require.ErrorIs(t, call(breaker, errDisk), errDisk)

	var ran atomic.Bool
	err := breaker.Do(func() error {
		ran.Store(true)
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ran.Load())
}

func TestBreakerRecovers(t *testing.T) {
	var transitions []string
	breaker := New("test", Settings{
		MaxRequests: 1,
		Timeout:     20 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool { return counts.ConsecutiveFailures >= 1 },
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	require.Error(t, call(breaker, errDisk))
	assert.Equal(t, StateOpen, breaker.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	require.NoError(t, call(breaker, nil))
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker := New("test", Settings{
		MaxRequests: 1,
		Timeout:     20 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool { return counts.ConsecutiveFailures >= 1 },
	})

	require.Error(t, call(breaker, errDisk))
	time.Sleep(40 * time.Millisecond)

	require.Error(t, call(breaker, errDisk))
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	breaker := New("test", Settings{
		ReadyToTrip: func(counts Counts) bool { return counts.ConsecutiveFailures >= 1 },
	})

	assert.Panics(t, func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
