package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AwaitReturnsValue(t *testing.T) {
	task := Run(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := task.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRun_AwaitReturnsError(t *testing.T) {
	boom := errors.New("boom")
	task := Run(context.Background(), func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := task.Result()
	assert.ErrorIs(t, err, boom)
}

func TestRun_PanicBecomesError(t *testing.T) {
	task := Run(context.Background(), func(ctx context.Context) (int, error) {
		panic("kaboom")
	})

	_, err := task.Result()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestTask_AwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	task := Run(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := task.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTask_CancelReachesWork(t *testing.T) {
	started := make(chan struct{})
	task := Run(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})

	<-started
	task.Cancel()

	_, err := task.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTask_ThenDeliversOutcome(t *testing.T) {
	got := make(chan int, 1)
	Run(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	}).Then(func(v int, err error) {
		if err == nil {
			got <- v
		}
	})

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestMap_TransformsOutcome(t *testing.T) {
	base := Completed(3, nil)
	doubled := Map(base, func(v int, err error) (int, error) {
		return v * 2, err
	})

	v, err := doubled.Result()
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestMap_SeesFailure(t *testing.T) {
	boom := errors.New("boom")
	wrapped := Map(Failed[int](boom), func(v int, err error) (string, error) {
		if err != nil {
			return "", errors.Join(errors.New("wrapped"), err)
		}
		return "ok", nil
	})

	_, err := wrapped.Result()
	assert.ErrorIs(t, err, boom)
}
