// Package control provides out-of-band run control via signal files.
// Creating a pause or stop file under .swarm/signals pauses or stops a run
// at the next phase boundary; removing the pause file resumes it.
package control

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrStopped is returned by WaitIfPaused when a stop signal arrives.
var ErrStopped = errors.New("stop signal received")

// pollInterval bounds how long a paused run waits between signal checks.
const pollInterval = 50 * time.Millisecond

// Manager tracks pause and stop signals for a run.
// Signals arrive either programmatically or via files in the signals
// directory, watched with fsnotify and double-checked by stat on read.
type Manager struct {
	signalsDir string

	mu          sync.RWMutex
	stopSignal  bool
	pauseSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManager creates a signal manager rooted at the given directory.
// The signals directory is created if it does not exist.
func NewManager(rootDir string) (*Manager, error) {
	signalsDir := filepath.Join(rootDir, ".swarm", "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	m := &Manager{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}

	// Start file watcher for immediate signals
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher - will use polling fallback
		return m, nil
	}
	m.watcher = watcher

	if err := watcher.Add(signalsDir); err != nil {
		watcher.Close()
		m.watcher = nil
		return m, nil
	}

	go m.watchSignals()

	return m, nil
}

// watchSignals monitors the signals directory for stop/pause files.
func (m *Manager) watchSignals() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			base := filepath.Base(event.Name)
			created := event.Op&fsnotify.Create != 0 || event.Op&fsnotify.Write != 0
			removed := event.Op&fsnotify.Remove != 0 || event.Op&fsnotify.Rename != 0

			m.mu.Lock()
			switch base {
			case "stop":
				if created {
					m.stopSignal = true
				}
			case "pause":
				if created {
					m.pauseSignal = true
				} else if removed {
					m.pauseSignal = false
				}
			}
			m.mu.Unlock()
		case <-m.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// ShouldStop returns true if a stop signal has been received.
func (m *Manager) ShouldStop() bool {
	// Also check file directly in case watcher missed it
	stopPath := filepath.Join(m.signalsDir, "stop")
	if _, err := os.Stat(stopPath); err == nil {
		m.mu.Lock()
		m.stopSignal = true
		m.mu.Unlock()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopSignal
}

// ShouldPause returns true if a pause signal is currently active.
func (m *Manager) ShouldPause() bool {
	pausePath := filepath.Join(m.signalsDir, "pause")
	if _, err := os.Stat(pausePath); err == nil {
		m.mu.Lock()
		m.pauseSignal = true
		m.mu.Unlock()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pauseSignal
}

// WaitIfPaused blocks while a pause signal is active.
// It returns ErrStopped if a stop signal arrives and the context error
// if the context is canceled. A nil return means execution may proceed.
func (m *Manager) WaitIfPaused(ctx context.Context) error {
	for {
		if m.ShouldStop() {
			return ErrStopped
		}
		if !m.ShouldPause() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Pause sets the pause signal programmatically.
func (m *Manager) Pause() {
	m.mu.Lock()
	m.pauseSignal = true
	m.mu.Unlock()
}

// Resume clears the pause signal and removes the pause file if present.
func (m *Manager) Resume() {
	m.mu.Lock()
	m.pauseSignal = false
	m.mu.Unlock()
	os.Remove(filepath.Join(m.signalsDir, "pause"))
}

// Stop sets the stop signal programmatically.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.stopSignal = true
	m.mu.Unlock()
}

// SendStop creates a stop signal file for out-of-process control.
func (m *Manager) SendStop() error {
	path := filepath.Join(m.signalsDir, "stop")
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// SendPause creates a pause signal file for out-of-process control.
func (m *Manager) SendPause() error {
	path := filepath.Join(m.signalsDir, "pause")
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// ClearSignals removes all signal files and resets signal state.
func (m *Manager) ClearSignals() {
	m.mu.Lock()
	m.stopSignal = false
	m.pauseSignal = false
	m.mu.Unlock()

	os.Remove(filepath.Join(m.signalsDir, "stop"))
	os.Remove(filepath.Join(m.signalsDir, "pause"))
}

// SignalsDir returns the path to the signals directory.
func (m *Manager) SignalsDir() string {
	return m.signalsDir
}

// Close shuts down the signal watcher.
func (m *Manager) Close() {
	close(m.done)
	if m.watcher != nil {
		m.watcher.Close()
	}
}
