package store

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("document not found")

// Record is one stored editing session.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	Snapshot  document.Snapshot `json:"snapshot" bson:"snapshot"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Store persists editing sessions.
type Store interface {
	// Get returns the record with the given id, or an error wrapping
	// [ErrNotFound].
	Get(ctx context.Context, id string) (*Record, error)

	// Put creates or replaces a record. UpdatedAt is set by the store.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// NewID returns a fresh random document id.
func NewID() string { return uuid.NewString() }

func notFound(id string) error {
	return perrors.Wrap(perrors.ErrCodeDocumentNotFound, ErrNotFound, "document %q", id)
}

func sortByUpdated(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

func prepare(rec *Record) error {
	if rec == nil {
		return perrors.New(perrors.ErrCodeInvalidInput, "nil record")
	}
	if err := perrors.ValidateDocumentID(rec.ID); err != nil {
		return err
	}
	rec.UpdatedAt = time.Now().UTC()
	return nil
}
