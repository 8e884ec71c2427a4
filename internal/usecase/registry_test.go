package usecase

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestJobRegistry(t *testing.T) {
	t.Run("start launches task without blocking", func(t *testing.T) {
		registry := NewJobRegistry()
		started := make(chan struct{})
		release := make(chan struct{})

		registry.Start("job-1", func(ctx context.Context) {
			close(started)
			<-release
		})

		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("task did not start")
		}

		if !registry.IsRunning("job-1") {
			t.Error("IsRunning = false, want true")
		}
		if registry.ActiveCount() != 1 {
			t.Errorf("ActiveCount = %d, want 1", registry.ActiveCount())
		}

		close(release)
		waitUntil(t, func() bool { return !registry.IsRunning("job-1") })
	})

	t.Run("cancel signals the task context", func(t *testing.T) {
		registry := NewJobRegistry()
		cancelled := make(chan struct{})

		registry.Start("job-2", func(ctx context.Context) {
			<-ctx.Done()
			close(cancelled)
		})

		if !registry.Cancel("job-2") {
			t.Error("Cancel = false, want true")
		}

		select {
		case <-cancelled:
		case <-time.After(time.Second):
			t.Fatal("task did not observe cancellation")
		}
	})

	t.Run("cancel of unknown job returns false", func(t *testing.T) {
		registry := NewJobRegistry()
		if registry.Cancel("missing") {
			t.Error("Cancel = true, want false")
		}
	})

	t.Run("entry removed when task finishes", func(t *testing.T) {
		registry := NewJobRegistry()
		registry.Start("job-3", func(ctx context.Context) {})

		waitUntil(t, func() bool { return registry.ActiveCount() == 0 })
		if registry.IsRunning("job-3") {
			t.Error("IsRunning = true after task finished")
		}
	})

	t.Run("safe under concurrent starts and cancels", func(t *testing.T) {
		registry := NewJobRegistry()
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				id := string(rune('a' + n%26))
				registry.Start(id, func(ctx context.Context) {
					<-ctx.Done()
				})
				registry.IsRunning(id)
				registry.Cancel(id)
			}(i)
		}
		wg.Wait()

		waitUntil(t, func() bool { return registry.ActiveCount() == 0 })
	})
}

// waitUntil polls a condition for up to two seconds
func waitUntil(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
