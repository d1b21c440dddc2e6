package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrProjectRootNotFound = errors.New("project images root not found")
	ErrInvalidDimension    = errors.New("invalid image dimension")
	ErrUnknownLandmark     = errors.New("unknown landmark")
	ErrDuplicateIdentity   = errors.New("duplicate identity")
	ErrUnresolvedIdentity  = errors.New("unresolved identity")
)

// SchemaError represents an invalid landmark schema
type SchemaError struct {
	Landmark string
	Message  string
}

func (e *SchemaError) Error() string {
	if e.Landmark == "" {
		return fmt.Sprintf("invalid schema: %s", e.Message)
	}
	return fmt.Sprintf("invalid schema: landmark %q: %s", e.Landmark, e.Message)
}

// IdentityError represents a conflict while merging identity map entries
type IdentityError struct {
	VideoGroup string
	FileName   string
	UploadID   int
	Reason     string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("cannot map %s/%s (upload %d): %s",
		e.VideoGroup, e.FileName, e.UploadID, e.Reason)
}

func (e *IdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}
