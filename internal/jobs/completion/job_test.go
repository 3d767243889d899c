package completion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeReservationRepo struct {
	calls     atomic.Int64
	completed int64
	err       error
	gotNow    time.Time
}

func (f *fakeReservationRepo) CompletePast(_ context.Context, now time.Time) (int64, error) {
	f.calls.Add(1)
	f.gotNow = now
	return f.completed, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestJob_Sweep(t *testing.T) {
	repo := &fakeReservationRepo{completed: 3}
	job := NewJob(repo, time.Minute, noopLogger{})

	fixed := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	job.sweep(context.Background())

	assert.Equal(t, int64(1), repo.calls.Load())
	assert.Equal(t, fixed, repo.gotNow)
}

func TestJob_Sweep_ErrorDoesNotPanic(t *testing.T) {
	repo := &fakeReservationRepo{err: errors.New("db is down")}
	job := NewJob(repo, time.Minute, noopLogger{})

	assert.NotPanics(t, func() {
		job.sweep(context.Background())
	})
}

func TestJob_Run_StopsOnContextCancel(t *testing.T) {
	repo := &fakeReservationRepo{}
	job := NewJob(repo, 10*time.Millisecond, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()

	// Даем джобу время на первый проход и минимум один тик
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancellation")
	}

	// Первый проход выполняется сразу, без ожидания тикера
	assert.GreaterOrEqual(t, repo.calls.Load(), int64(2))
}
