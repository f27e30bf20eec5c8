package gotenant

import (
	"errors"
	"fmt"
	"strings"
)

// maxNameLength bounds identifier length to keep cache keys and store
// lookups predictable.
const maxNameLength = 128

// TenantID identifies an isolated customer namespace.
type TenantID string

// PrincipalID identifies a user or service being authorized. Principals are
// scoped to a tenant for tenant roles but global across tenants for global roles.
type PrincipalID string

// RoleID identifies a role within a tenant.
type RoleID string

// GlobalRoleID identifies a role assignable to a principal independent of tenant.
type GlobalRoleID string

// ResourceName identifies a resource for scope checks. It is compared only
// against the resource portion of granted permissions.
type ResourceName string

// NewTenantID creates a validated tenant identifier.
func NewTenantID(value string) (TenantID, error) {
	name, err := validateName(value, "tenant id")
	return TenantID(name), err
}

// NewPrincipalID creates a validated principal identifier.
func NewPrincipalID(value string) (PrincipalID, error) {
	name, err := validateName(value, "principal id")
	return PrincipalID(name), err
}

// NewRoleID creates a validated role identifier.
func NewRoleID(value string) (RoleID, error) {
	name, err := validateName(value, "role id")
	return RoleID(name), err
}

// NewGlobalRoleID creates a validated global role identifier.
func NewGlobalRoleID(value string) (GlobalRoleID, error) {
	name, err := validateName(value, "global role id")
	return GlobalRoleID(name), err
}

// NewResourceName creates a validated resource name.
func NewResourceName(value string) (ResourceName, error) {
	name, err := validateName(value, "resource name")
	return ResourceName(name), err
}

func (id TenantID) String() string     { return string(id) }
func (id PrincipalID) String() string  { return string(id) }
func (id RoleID) String() string       { return string(id) }
func (id GlobalRoleID) String() string { return string(id) }
func (n ResourceName) String() string  { return string(n) }

// validateName trims the value and enforces the shared identifier rules:
// non-empty, bounded length, restricted character set.
func validateName(value, kind string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.Join(ErrInvalidID, fmt.Errorf("%s must not be empty", kind))
	}
	if len(trimmed) > maxNameLength {
		return "", errors.Join(ErrInvalidID, fmt.Errorf("%s length must be <= %d", kind, maxNameLength))
	}
	for _, ch := range trimmed {
		if !isNameChar(ch) {
			return "", errors.Join(ErrInvalidID, fmt.Errorf("%s contains invalid characters", kind))
		}
	}
	return trimmed, nil
}

func isNameChar(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z':
		return true
	case ch >= 'A' && ch <= 'Z':
		return true
	case ch >= '0' && ch <= '9':
		return true
	case ch == ':' || ch == '_' || ch == '-':
		return true
	}
	return false
}
