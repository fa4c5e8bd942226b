package data

import "errors"

// Shared sentinel errors for data-layer stores.
var (
	// ErrInvalidFileName is returned when an auxiliary result file name would escape its UID namespace.
	ErrInvalidFileName = errors.New("invalid result file name")
	// ErrRootRequired is returned when the result store is constructed without a root directory.
	ErrRootRequired = errors.New("result store root is required")
	// ErrJournalNotConfigured is returned by a journal built without a database handle.
	ErrJournalNotConfigured = errors.New("outcome journal not configured")
)
