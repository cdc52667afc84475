package filestorage

import "io"

// ObjectStorage is the external object-store delegate. Objects are
// keyed by caller-supplied title; only the returned URL is persisted
// by the application.
type ObjectStorage interface {
	// Put stores the object under key and returns the URL it is
	// reachable at.
	Put(key string, r io.Reader, contentType string) (string, error)

	// Delete removes the object stored under key. Deleting a missing
	// object is not an error.
	Delete(key string) error
}
