package record

import (
	"context"
)

// Repository opens units of work against the backing store.
type Repository interface {
	Session(ctx context.Context) (Session, error)
}

// Session is a scoped handle to the store. Every call commits on its own;
// Close releases the underlying connection and must always be called.
type Session interface {
	Create(ctx context.Context, name string, age int) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	// Get returns ErrNotFound when no row has the id.
	Get(ctx context.Context, id int) (*Record, error)
	// Update returns ErrNotFound when no row has the id.
	Update(ctx context.Context, rec *Record) error
	// Delete returns ErrNotFound when no row has the id.
	Delete(ctx context.Context, id int) error
	Close() error
}
