package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLatest_ApplyNewest(t *testing.T) {
	t.Parallel()

	var l Latest[string]

	_, ok := l.Value()
	require.False(t, ok)

	t1, err := l.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, l.Apply(t1, "one"))

	v, ok := l.Value()
	require.True(t, ok)
	require.Equal(t, "one", v)
}

func TestLatest_SlowFirstFastSecond(t *testing.T) {
	t.Parallel()

	var l Latest[string]

	slow, err := l.Begin(context.Background())
	require.NoError(t, err)
	fast, err := l.Begin(context.Background())
	require.NoError(t, err)

	require.Greater(t, fast.Seq(), slow.Seq())
	require.ErrorIs(t, slow.Context().Err(), context.Canceled)
	require.NoError(t, fast.Context().Err())

	require.NoError(t, l.Apply(fast, "second"))
	require.ErrorIs(t, l.Apply(slow, "first"), ErrSuperseded)

	v, _ := l.Value()
	require.Equal(t, "second", v)
}

func TestLatest_SlowFirstFastSecond_Run(t *testing.T) {
	t.Parallel()

	var l Latest[string]
	releaseSlow := make(chan struct{})
	slowStarted := make(chan struct{})

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = l.Run(context.Background(), func(ctx context.Context) (string, error) {
			close(slowStarted)
			<-releaseSlow
			// Ignore cancellation to model a response that arrives anyway.
			return "first", nil
		})
	}()

	<-slowStarted
	v, err := l.Run(context.Background(), func(context.Context) (string, error) {
		return "second", nil
	})
	require.NoError(t, err)
	require.Equal(t, "second", v)

	close(releaseSlow)
	wg.Wait()

	require.ErrorIs(t, slowErr, ErrSuperseded)
	got, _ := l.Value()
	require.Equal(t, "second", got)
}

func TestLatest_CloseDiscardsInFlight(t *testing.T) {
	t.Parallel()

	var l Latest[int]

	tk, err := l.Begin(context.Background())
	require.NoError(t, err)

	l.Close()
	require.ErrorIs(t, tk.Context().Err(), context.Canceled)
	require.ErrorIs(t, l.Apply(tk, 1), ErrClosed)
	require.False(t, l.Current(tk))

	_, ok := l.Value()
	require.False(t, ok)

	_, err = l.Begin(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestLatest_RunError(t *testing.T) {
	t.Parallel()

	var l Latest[int]
	_, err := l.Run(context.Background(), func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = l.Run(context.Background(), func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	// Failed loads keep the previous value.
	v, ok := l.Value()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestLatest_ParentCancellation(t *testing.T) {
	t.Parallel()

	var l Latest[int]
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	tk, err := l.Begin(ctx)
	require.NoError(t, err)
	<-tk.Context().Done()
	require.ErrorIs(t, tk.Context().Err(), context.DeadlineExceeded)
}

func TestLatest_Concurrent(t *testing.T) {
	t.Parallel()

	var l Latest[int]
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Run(context.Background(), func(context.Context) (int, error) { return i, nil })
		}()
	}
	wg.Wait()

	_, ok := l.Value()
	require.True(t, ok)
}
