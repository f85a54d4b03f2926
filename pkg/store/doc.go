// Package store persists editing sessions.
//
// A [Record] holds a [document.Snapshot] (present and base documents plus the
// encoded undo history) under a document id. Four backends implement [Store]:
//
//   - [MemoryStore]: in-process, for tests and throwaway servers
//   - [FileStore]: one JSON file per document, the CLI default
//   - [RedisStore]: JSON strings with an optional TTL, for shared servers
//   - [MongoStore]: one BSON document per record
//
// [Open] picks a backend from a [Config] and wraps it with [Instrument] so
// loads and saves reach the registered observability hooks.
//
//	s, err := store.Open(ctx, store.Config{Backend: store.BackendRedis, RedisAddr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// Missing records produce an error that matches both [ErrNotFound] (via
// errors.Is) and the DOCUMENT_NOT_FOUND code.
package store
