package gpurays

import (
	"sync"

	"github.com/google/uuid"
)

// FrameCallback receives each completed scan. The buffer is read-only and
// valid only for the duration of the call; consumers that need it afterwards
// must copy it.
type FrameCallback func(scan []float32, width, height, channels int, format string)

type observer struct {
	id uuid.UUID
	cb FrameCallback
}

// Connection is a consumer's registration handle. Closing it revokes the
// registration; a closed connection is never notified again, and closing is
// idempotent.
type Connection struct {
	id   uuid.UUID
	s    *raySensor
	once sync.Once
}

// ID returns the connection's unique identifier.
func (c *Connection) ID() uuid.UUID { return c.id }

// Close revokes the registration. Notification already in flight to other
// consumers is unaffected.
func (c *Connection) Close() {
	c.once.Do(func() {
		c.s.disconnect(c.id)
	})
}

// Connect registers cb for synchronous delivery of every completed scan, in
// registration order, before Update returns.
func (s *raySensor) Connect(cb FrameCallback) *Connection {
	conn := &Connection{id: uuid.New(), s: s}
	s.obsMu.Lock()
	s.observers = append(s.observers, observer{id: conn.id, cb: cb})
	s.obsMu.Unlock()
	return conn
}

func (s *raySensor) disconnect(id uuid.UUID) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *raySensor) connected(id uuid.UUID) bool {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for _, o := range s.observers {
		if o.id == id {
			return true
		}
	}
	return false
}

// notify fans the completed scan out to consumers. The observer lock is held
// only while snapshotting the list, never during dispatch, so callbacks are
// free to connect or disconnect.
func (s *raySensor) notify(scan []float32, width, height int) {
	s.obsMu.Lock()
	snapshot := make([]observer, len(s.observers))
	copy(snapshot, s.observers)
	s.obsMu.Unlock()

	for _, o := range snapshot {
		// Skip consumers revoked since the snapshot was taken.
		if !s.connected(o.id) {
			continue
		}
		o.cb(scan, width, height, Channels, FormatTag)
	}
}
