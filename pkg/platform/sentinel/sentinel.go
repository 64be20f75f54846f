package sentinel

import "errors"

// Sentinel errors for store-layer facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without the
// store knowing anything about HTTP or validation policy.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: the requested relation already exists (duplicate friend
//     edge, duplicate like)
//   - ErrInvalidState: the entity is in the wrong state for the operation
//     (removing a like that was never added)
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
