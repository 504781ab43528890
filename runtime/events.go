package runtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is an observability record emitted by a program operation. Events
// are append-only and never authoritative state.
type Event interface {
	EventName() string
	EventFields() map[string]interface{}
}

// Emitter receives events from committed operations.
type Emitter interface {
	Emit(event Event)
}

// LogEmitter writes one structured log line per event.
type LogEmitter struct {
	log *logrus.Logger
}

func NewLogEmitter(log *logrus.Logger) *LogEmitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(event Event) {
	e.log.WithFields(logrus.Fields(event.EventFields())).Info(event.EventName())
}

// MemoryEmitter collects events for inspection in tests.
type MemoryEmitter struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEmitter() *MemoryEmitter { return &MemoryEmitter{} }

func (e *MemoryEmitter) Emit(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *MemoryEmitter) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}
