package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	successfulService := func() error { return nil }
	errService := errors.New("service error")
	failingService := func() error { return errService }

	now := time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)
	cb := New(Settings{
		RecordLength:     4,
		Timeout:          2 * time.Second,
		Percentile:       0.5,
		RecoveryRequests: 2,
	}).(*circuitBreaker)
	cb.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, Closed, cb.State())

	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, Closed, cb.State())
	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, Open, cb.State())

	require.ErrorIs(t, cb.Call(successfulService), ErrOpenCB)

	now = now.Add(3 * time.Second)
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, HalfOpen, cb.State())

	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, Open, cb.State())

	now = now.Add(3 * time.Second)
	require.NoError(t, cb.Call(successfulService))
	require.NoError(t, cb.Call(successfulService))
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	t.Parallel()
	cb := New(Settings{RecordLength: 1, Timeout: time.Hour, Percentile: 1, RecoveryRequests: 1})
	_ = cb.Call(func() error { return errors.New("boom") })
	require.Equal(t, Open, cb.State())
	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
