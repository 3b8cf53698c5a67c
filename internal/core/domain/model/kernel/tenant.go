package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTenantIDIsNotConstructed indicates a zero-value TenantID.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError("TenantID must be created via NewTenantID or TenantIDFromString")

// TenantID identifies the owning tenant of every aggregate and every operation.
//
// It is deliberately a distinct type from UUID: a TenantID cannot be passed
// where an entity identifier is expected and vice versa. Every core operation
// takes a TenantID explicitly and every repository query filters by it, so an
// operation that forgets tenant scoping does not compile.
type TenantID struct {
	id uuid.UUID
}

// NewTenantID generates a new random tenant identifier.
// Used when provisioning tenants; request handling always parses an existing one.
func NewTenantID() TenantID {
	return TenantID{id: uuid.New()}
}

// TenantIDFromString parses a TenantID from its string representation, as
// supplied by the authentication collaborator.
func TenantIDFromString(s string) (TenantID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant ID format: %w", err)
	}
	t := TenantID{id: id}
	if err = t.Validate(); err != nil {
		return TenantID{}, err
	}
	return t, nil
}

// TenantIDFromBytes creates a TenantID from persisted binary form.
func TenantIDFromBytes(b []byte) (TenantID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant ID format: %w", err)
	}
	t := TenantID{id: id}
	if err = t.Validate(); err != nil {
		return TenantID{}, err
	}
	return t, nil
}

// String returns the standard UUID string representation.
func (t TenantID) String() string {
	return t.id.String()
}

// Bytes returns the underlying uuid.UUID value for the persistence layer.
func (t TenantID) Bytes() uuid.UUID {
	return t.id
}

// IsEqual compares two tenant identifiers by value.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.id == other.id
}

// Validate returns ErrTenantIDIsNotConstructed for the zero value.
func (t TenantID) Validate() error {
	if t.id == uuid.Nil {
		return ErrTenantIDIsNotConstructed
	}
	return nil
}
