package errs

import "errors"

// Sentinel errors shared by the catalog layers
var (
	// Lookup errors
	ErrProductNotFound = errors.New("product not found")

	// Persistence errors
	ErrMalformedRecord  = errors.New("malformed record")
	ErrStorageFailure   = errors.New("storage operation failed")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
