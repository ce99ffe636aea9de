package scene

import "sync"

// Connection is a handle to a connected slot. The zero value is not
// connected; Disconnect on it is a no-op.
type Connection struct {
	id      uint64
	release func(id uint64)
}

// Disconnect removes the slot. Calling it more than once is safe.
func (c Connection) Disconnect() {
	if c.release != nil {
		c.release(c.id)
	}
}

// IsZero reports whether c was never connected.
func (c Connection) IsZero() bool {
	return c.release == nil
}

type slot[T any] struct {
	id   uint64
	fn   func(T)
	dead bool
}

// Signal delivers values of type T to connected slots in connection order.
// The zero value is ready to use.
type Signal[T any] struct {
	mu     sync.Mutex
	nextID uint64
	slots  []*slot[T]
}

// Connect registers fn and returns its connection.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.slots = append(s.slots, &slot[T]{id: s.nextID, fn: fn})
	return Connection{id: s.nextID, release: s.disconnect}
}

// Emit calls every connected slot with v. Slots disconnected while the
// emission is running are skipped.
func (s *Signal[T]) Emit(v T) {
	s.mu.Lock()
	snapshot := make([]*slot[T], len(s.slots))
	copy(snapshot, s.slots)
	s.mu.Unlock()

	for _, sl := range snapshot {
		s.mu.Lock()
		dead := sl.dead
		s.mu.Unlock()
		if !dead {
			sl.fn(v)
		}
	}
}

// Len returns the number of connected slots.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Signal[T]) disconnect(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sl := range s.slots {
		if sl.id == id {
			sl.dead = true
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return
		}
	}
}
