package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type countingPoller struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *countingPoller) Poll() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return []string{"wishlist"}, p.err
}

func (p *countingPoller) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestStartWatcher_PollsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingPoller{}
	StartWatcher(ctx, p, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for p.count() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("watcher polled %d times, want at least 3", p.count())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := p.count()
	time.Sleep(30 * time.Millisecond)
	if got := p.count(); got != stopped {
		t.Fatalf("watcher kept polling after cancel: %d -> %d", stopped, got)
	}
}

func TestStartWatcher_BacksOffOnFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core, logs := observer.New(zap.WarnLevel)
	p := &countingPoller{err: errors.New("disk gone")}
	StartWatcher(ctx, p, 10*time.Millisecond, zap.New(core))

	// Polls at 0, 20ms, 60ms, 140ms with doubling back-off.
	time.Sleep(100 * time.Millisecond)
	if got := p.count(); got < 1 || got > 4 {
		t.Fatalf("polls = %d, want back-off to limit them", got)
	}
	if logs.FilterMessage("storage poll failed").Len() == 0 {
		t.Fatalf("poll failure not logged")
	}
}
