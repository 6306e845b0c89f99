package quota

import (
	"errors"
	"fmt"
)

// StorageError reports a failed read or write of the persisted quota state.
// It is never fatal: the manager keeps serving from memory and retries the
// write on its next operation.
type StorageError struct {
	Op  string // "read" or "write"
	Key string // empty for multi-key writes
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("quota storage %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("quota storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err carries a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func joinStorageErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return errors.Join(errs...)
}
