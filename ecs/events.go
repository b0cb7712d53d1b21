package ecs

import (
	"iter"
	"reflect"
)

// eventRotator is implemented by every event buffer so the scheduler can age
// events at the end of each frame without knowing their types.
type eventRotator interface {
	rotate()
}

// eventBuffer is the shared, double-buffered queue for one event type.
// Events sent during frame N stay readable through the end of frame N+1.
type eventBuffer[T any] struct {
	previous      []T
	current       []T
	previousStart uint64
	currentStart  uint64
}

func (b *eventBuffer[T]) send(event T) {
	b.current = append(b.current, event)
}

func (b *eventBuffer[T]) total() uint64 {
	return b.currentStart + uint64(len(b.current))
}

func (b *eventBuffer[T]) rotate() {
	// reuse the oldest backing array for the next frame
	recycled := b.previous[:0]
	b.previous = b.current
	b.previousStart = b.currentStart
	b.current = recycled
	b.currentStart = b.previousStart + uint64(len(b.previous))
}

func eventBufferFor[T any](s *Storage) *eventBuffer[T] {
	t := reflect.TypeFor[eventBuffer[T]]()
	if entry := s.getSingletonEntry(t); entry != nil {
		return (*eventBuffer[T])(entry.dataPtr)
	}
	s.AddSingleton(&eventBuffer[T]{})
	buf := (*eventBuffer[T])(s.getSingletonEntry(t).dataPtr)
	s.events = append(s.events, buf)
	return buf
}

// Events is a reader/writer handle over the event queue for T.
// Each handle keeps its own cursor, so every handle observes each event exactly once.
// Systems declare Events fields and the Scheduler initializes them on registration.
type Events[T any] struct {
	buffer *eventBuffer[T]
	cursor uint64
}

// NewEvents creates a handle for use outside systems. The handle only observes
// events sent after it was created.
func NewEvents[T any](storage *Storage) *Events[T] {
	e := &Events[T]{}
	e.Init(storage)
	return e
}

// Init binds the handle to the storage's queue for T.
// This is called automatically by the Scheduler during system registration.
func (e *Events[T]) Init(storage *Storage) {
	e.buffer = eventBufferFor[T](storage)
	e.cursor = e.buffer.total()
}

// Send appends an event to the queue.
func (e *Events[T]) Send(event T) {
	e.buffer.send(event)
}

// Len returns the number of events this handle has not read yet.
func (e *Events[T]) Len() int {
	return int(e.buffer.total() - e.oldestUnread())
}

// Read iterates unread events in the order they were sent and advances the cursor.
// Events that aged out before this handle read them are skipped.
func (e *Events[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		b := e.buffer
		e.cursor = e.oldestUnread()

		for e.cursor < b.total() {
			var event T
			if e.cursor < b.currentStart {
				event = b.previous[e.cursor-b.previousStart]
			} else {
				event = b.current[e.cursor-b.currentStart]
			}
			e.cursor++
			if !yield(event) {
				return
			}
		}
	}
}

func (e *Events[T]) oldestUnread() uint64 {
	return max(e.cursor, e.buffer.previousStart)
}
