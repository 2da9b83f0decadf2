package orchestrator

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// EventEmitter handles event emission for the orchestrator.
// It provides a simple, thread-safe way to emit events to subscribers.
type EventEmitter struct {
	events       chan OrchestratorEvent
	droppedCount atomic.Uint64
}

// NewEventEmitter creates a new EventEmitter with the given buffer size.
func NewEventEmitter(bufferSize int) *EventEmitter {
	return &EventEmitter{
		events: make(chan OrchestratorEvent, bufferSize),
	}
}

// Emit sends an event to the events channel.
// If the channel is full, it tries with a timeout before dropping the event.
func (e *EventEmitter) Emit(event OrchestratorEvent) {
	// Try immediate send first
	select {
	case e.events <- event:
		return
	default:
		// Channel full, try with timeout
	}

	// Try with 100ms timeout to give the receiver a chance to drain
	select {
	case e.events <- event:
		return
	case <-time.After(100 * time.Millisecond):
		// Timeout expired, drop the event
		count := e.droppedCount.Add(1)
		if count%10 == 1 { // Log every 10th drop to avoid spam
			log.Warn().Uint64("dropped_total", count).Str("type", string(event.Type)).Msg("event channel full, dropped event")
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *EventEmitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns a read-only channel of events.
// This is used by subscribers (e.g., TUI) to receive updates.
func (e *EventEmitter) Events() <-chan OrchestratorEvent {
	return e.events
}

// Close closes the events channel.
// This should be called when the run is finished.
func (e *EventEmitter) Close() {
	close(e.events)
}
