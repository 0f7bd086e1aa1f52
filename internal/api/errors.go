package api

import (
	"fmt"

	"github.com/foliohq/folioclient/internal/schema"
)

// SyncConflictError reports a premium sync conflict: local and remote
// databases diverged and the backend wants an explicit resolution. It is
// distinct from the generic backend error so callers can offer the choice.
type SyncConflictError struct {
	Message  string
	Conflict schema.SyncConflict
}

// Error implements the error interface.
func (e *SyncConflictError) Error() string {
	if e.Message == "" {
		return "database sync conflict"
	}
	return fmt.Sprintf("database sync conflict: %s", e.Message)
}

// Is checks if the error matches the target.
func (e *SyncConflictError) Is(target error) bool {
	_, ok := target.(*SyncConflictError)
	return ok
}
