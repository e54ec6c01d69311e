package storage

import "io"

// BlobStore is the photo storage backend, keyed by relative path.
// Writes are independent of ledger transactions: a failed blob write is
// reported to the caller and never rolls back checkout state.
type BlobStore interface {
	// Save writes the blob at key, creating parent directories or
	// prefixes as needed.
	Save(key string, reader io.Reader) error

	// Open returns the blob for reading.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing blob is not an error;
	// the retention job may run against rows whose files are gone.
	Delete(key string) error
}
