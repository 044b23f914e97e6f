package traffix

// eventLog keeps the newest entries first and evicts the oldest past capacity
type eventLog[T any] struct {
	entries  []T
	capacity int
}

func newEventLog[T any](capacity int) *eventLog[T] {
	return &eventLog[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Push prepends entry, dropping the oldest one when full
func (l *eventLog[T]) Push(entry T) {
	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, entry)
	}
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
}

// Items returns a copy, newest first
func (l *eventLog[T]) Items() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *eventLog[T]) Len() int {
	return len(l.entries)
}
