package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/procview/pkg/observability"
)

// Instrument wraps s so that every Get and Put reports to the registered
// [observability.StoreHooks] under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, id string) (*Record, error) {
	start := time.Now()
	rec, err := s.Store.Get(ctx, id)
	observability.Store().OnLoad(ctx, s.backend, id, time.Since(start), err)
	return rec, err
}

func (s *instrumented) Put(ctx context.Context, rec *Record) error {
	start := time.Now()
	err := s.Store.Put(ctx, rec)
	size := 0
	if rec != nil {
		if data, merr := json.Marshal(rec.Snapshot); merr == nil {
			size = len(data)
		}
	}
	id := ""
	if rec != nil {
		id = rec.ID
	}
	observability.Store().OnSave(ctx, s.backend, id, size, time.Since(start), err)
	return err
}
