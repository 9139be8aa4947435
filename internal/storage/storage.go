package storage

import "io"

// DocumentStorage persists uploaded identity documents and yields the
// public URL path they are served from. The local-disk implementation backs
// the static /uploads route; a cloud backend can slot in behind the same
// interface.
type DocumentStorage interface {
	// Save writes the file under a generated name derived from origName's
	// extension and returns its public URL path (e.g. "/uploads/<name>").
	Save(origName string, r io.Reader) (string, error)

	// Open returns the stored file for reading.
	Open(name string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(name string) error
}
