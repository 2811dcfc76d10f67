package counter

import "context"

// Repository provides durable storage for the encoded collection snapshot.
type Repository interface {
	// LoadSnapshot returns repository.ErrNotFound when nothing was saved yet.
	LoadSnapshot(ctx context.Context) ([]byte, error)
	SaveSnapshot(ctx context.Context, data []byte) error
}

// Persister receives the full collection after every persisted mutation.
// Implementations must return without waiting on I/O.
type Persister interface {
	Persist(counters []Counter, change Change)
}
