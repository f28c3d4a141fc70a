package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/scheduler/internal/appointments"
)

func TestDayLocksAcquireAndRelease(t *testing.T) {
	locks := newDayLocks()
	ctx := context.Background()

	release, err := locks.acquire(ctx, "doc-1|2026-03-10", time.Second)
	require.NoError(t, err)
	release()

	// Released lock can be taken again.
	release, err = locks.acquire(ctx, "doc-1|2026-03-10", time.Second)
	require.NoError(t, err)
	release()
}

func TestDayLocksTimeoutIsConflict(t *testing.T) {
	locks := newDayLocks()
	ctx := context.Background()

	release, err := locks.acquire(ctx, "doc-1|2026-03-10", time.Second)
	require.NoError(t, err)
	defer release()

	_, err = locks.acquire(ctx, "doc-1|2026-03-10", 20*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appointments.ErrConflict))
}

func TestDayLocksIndependentKeys(t *testing.T) {
	locks := newDayLocks()
	ctx := context.Background()

	r1, err := locks.acquire(ctx, "doc-1|2026-03-10", time.Second)
	require.NoError(t, err)
	defer r1()

	// Same doctor, different day does not contend.
	r2, err := locks.acquire(ctx, "doc-1|2026-03-11", 20*time.Millisecond)
	require.NoError(t, err)
	defer r2()
}

func TestDayLocksContextCancel(t *testing.T) {
	locks := newDayLocks()

	release, err := locks.acquire(context.Background(), "doc-1|2026-03-10", time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locks.acquire(ctx, "doc-1|2026-03-10", time.Second)
	assert.True(t, errors.Is(err, context.Canceled))
}
