package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLimiter runs Evaluate under a mutex against an in-process state map.
// Test double only: mirrors the serialization the Postgres row lock provides.
type memoryLimiter struct {
	mu     sync.Mutex
	states map[string]State
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{states: make(map[string]State)}
}

func (l *memoryLimiter) CheckAndRecord(_ context.Context, linkID string, policy Policy, now time.Time) (Decision, error) {
	if !policy.Enabled() {
		return Admit, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next, decision := Evaluate(l.states[linkID], policy, now)
	if decision == Admit {
		l.states[linkID] = next
	}
	return decision, nil
}

func ptr(t time.Time) *time.Time { return &t }

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := Policy{MaxRequests: 3, WindowMs: 1000}

	tests := []struct {
		name         string
		state        State
		wantDecision Decision
		wantCounter  int64
		wantStart    time.Time
	}{
		{
			name:         "first redirect ever starts a window",
			state:        State{},
			wantDecision: Admit,
			wantCounter:  1,
			wantStart:    now,
		},
		{
			name:         "within window under budget increments",
			state:        State{Counter: 1, WindowStart: ptr(now.Add(-500 * time.Millisecond))},
			wantDecision: Admit,
			wantCounter:  2,
			wantStart:    now.Add(-500 * time.Millisecond),
		},
		{
			name:         "at budget rejects without incrementing",
			state:        State{Counter: 3, WindowStart: ptr(now.Add(-500 * time.Millisecond))},
			wantDecision: Reject,
			wantCounter:  3,
			wantStart:    now.Add(-500 * time.Millisecond),
		},
		{
			name:         "expired window resets regardless of prior counter",
			state:        State{Counter: 99, WindowStart: ptr(now.Add(-1500 * time.Millisecond))},
			wantDecision: Admit,
			wantCounter:  1,
			wantStart:    now,
		},
		{
			name:         "elapsed exactly the window length is still the current window",
			state:        State{Counter: 3, WindowStart: ptr(now.Add(-1000 * time.Millisecond))},
			wantDecision: Reject,
			wantCounter:  3,
			wantStart:    now.Add(-1000 * time.Millisecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, decision := Evaluate(tt.state, policy, now)
			assert.Equal(t, tt.wantDecision, decision)
			assert.Equal(t, tt.wantCounter, next.Counter)
			require.NotNil(t, next.WindowStart)
			assert.True(t, next.WindowStart.Equal(tt.wantStart), "window start %v, want %v", next.WindowStart, tt.wantStart)
		})
	}
}

func TestEvaluate_SequenceWithinWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := Policy{MaxRequests: 3, WindowMs: 1000}

	state := State{}
	var decision Decision
	for i := 0; i < 3; i++ {
		state, decision = Evaluate(state, policy, now.Add(time.Duration(i)*100*time.Millisecond))
		assert.Equal(t, Admit, decision, "call %d should admit", i+1)
	}
	assert.Equal(t, int64(3), state.Counter)

	// fourth call within the same window rejects and leaves the counter alone
	state, decision = Evaluate(state, policy, now.Add(400*time.Millisecond))
	assert.Equal(t, Reject, decision)
	assert.Equal(t, int64(3), state.Counter)
}

func TestCheckAndRecord_DisabledPolicyNeverMutates(t *testing.T) {
	limiter := newMemoryLimiter()
	now := time.Now()

	for _, policy := range []Policy{
		{},
		{MaxRequests: 5},
		{WindowMs: 1000},
	} {
		for i := 0; i < 10; i++ {
			decision, err := limiter.CheckAndRecord(context.Background(), "link-1", policy, now)
			require.NoError(t, err)
			assert.Equal(t, Admit, decision)
		}
	}
	assert.Empty(t, limiter.states, "disabled policies must leave rate-limit state untouched")
}

func TestCheckAndRecord_ConcurrentBudgetIsExact(t *testing.T) {
	const (
		callers = 100
		budget  = 10
	)
	limiter := newMemoryLimiter()
	policy := Policy{MaxRequests: budget, WindowMs: 60_000}
	now := time.Now()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		admits  int
		rejects int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := limiter.CheckAndRecord(context.Background(), "link-1", policy, now)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if decision == Admit {
				admits++
			} else {
				rejects++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, budget, admits, "exactly the budget must be admitted")
	assert.Equal(t, callers-budget, rejects)
	assert.Equal(t, int64(budget), limiter.states["link-1"].Counter, "no lost or extra increments")
}

func TestCheckAndRecord_DifferentLinksDoNotShareBudget(t *testing.T) {
	limiter := newMemoryLimiter()
	policy := Policy{MaxRequests: 1, WindowMs: 60_000}
	now := time.Now()

	d1, err := limiter.CheckAndRecord(context.Background(), "link-1", policy, now)
	require.NoError(t, err)
	d2, err := limiter.CheckAndRecord(context.Background(), "link-2", policy, now)
	require.NoError(t, err)

	assert.Equal(t, Admit, d1)
	assert.Equal(t, Admit, d2)
}
