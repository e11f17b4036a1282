package auditing

import "errors"

var (
	ErrAuditFileNotFound = errors.New("audit file not found")
	ErrMalformedAudit    = errors.New("malformed audit document")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrStorageDisabled   = errors.New("snapshot storage is disabled")
)
