package store

import "context"

// Store is the persistence boundary for the platform's collections. Each key
// holds one whole serialized collection (a list or a map); every mutation is a
// full read-modify-write of that collection by a single writer.
type Store interface {
	// Read decodes the value stored at key into dest. A missing key or an
	// undecodable payload leaves dest untouched and returns nil, so callers
	// pass their fallback value in dest. Only backend I/O failures surface as
	// errors.
	Read(ctx context.Context, key string, dest any) error

	// Write serializes value and replaces the key in a single step.
	Write(ctx context.Context, key string, value any) error

	// WriteAll applies several writes as one batch. Backends that can
	// (postgres, redis) apply the batch atomically; the rest apply the writes
	// in order.
	WriteAll(ctx context.Context, entries ...Entry) error
}

// Entry is a single key/value pair in a WriteAll batch.
type Entry struct {
	Key   string
	Value any
}
