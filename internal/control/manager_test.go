package control

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestNewManagerCreatesSignalsDir(t *testing.T) {
	m := newTestManager(t)

	info, err := os.Stat(m.SignalsDir())
	if err != nil {
		t.Fatalf("signals dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("signals path is not a directory")
	}
}

func TestWaitIfPausedPassesThrough(t *testing.T) {
	m := newTestManager(t)

	if err := m.WaitIfPaused(context.Background()); err != nil {
		t.Errorf("expected nil with no signals, got %v", err)
	}
}

func TestWaitIfPausedReturnsErrStopped(t *testing.T) {
	m := newTestManager(t)

	m.Stop()
	if err := m.WaitIfPaused(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestWaitIfPausedBlocksUntilResume(t *testing.T) {
	m := newTestManager(t)
	m.Pause()

	done := make(chan error, 1)
	go func() {
		done <- m.WaitIfPaused(context.Background())
	}()

	select {
	case err := <-done:
		t.Fatalf("WaitIfPaused returned %v while paused", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.Resume()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil after resume, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitIfPaused did not return after resume")
	}
}

func TestWaitIfPausedStopWhilePaused(t *testing.T) {
	m := newTestManager(t)
	m.Pause()

	done := make(chan error, 1)
	go func() {
		done <- m.WaitIfPaused(context.Background())
	}()

	m.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, ErrStopped) {
			t.Errorf("expected ErrStopped, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitIfPaused did not return after stop")
	}
}

func TestWaitIfPausedContextCanceled(t *testing.T) {
	m := newTestManager(t)
	m.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.WaitIfPaused(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitIfPaused did not return after cancel")
	}
}

func TestStopFileDetectedByStat(t *testing.T) {
	m := newTestManager(t)

	path := filepath.Join(m.SignalsDir(), "stop")
	if err := os.WriteFile(path, []byte("now"), 0644); err != nil {
		t.Fatalf("writing stop file: %v", err)
	}

	if !m.ShouldStop() {
		t.Error("expected ShouldStop true after stop file created")
	}
}

func TestSendAndClearSignals(t *testing.T) {
	m := newTestManager(t)

	if err := m.SendPause(); err != nil {
		t.Fatalf("SendPause failed: %v", err)
	}
	if err := m.SendStop(); err != nil {
		t.Fatalf("SendStop failed: %v", err)
	}

	if !m.ShouldPause() {
		t.Error("expected ShouldPause true after SendPause")
	}
	if !m.ShouldStop() {
		t.Error("expected ShouldStop true after SendStop")
	}

	m.ClearSignals()

	if m.ShouldStop() {
		t.Error("expected ShouldStop false after ClearSignals")
	}
	if m.ShouldPause() {
		t.Error("expected ShouldPause false after ClearSignals")
	}
}
