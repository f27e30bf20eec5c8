package gotenant

import (
	"errors"
	"strings"
)

// Wildcard is the segment that matches any value when wildcard matching
// is enabled on the engine.
const Wildcard = "*"

// segmentSeparator splits a permission's resource portion into sub-segments.
const segmentSeparator = ":"

// Permission is a capability string in "resource:action" form. The split
// happens at the last colon, so the resource portion may itself contain
// colons ("invoice:sub:read" has resource "invoice:sub" and action "read").
type Permission string

// PermissionValidator validates a normalized permission string.
// Implementations receive the value after trimming and optional lowercasing.
type PermissionValidator interface {
	Validate(value string) error
}

// DefaultValidator is the strict permission validator: the value must split
// into resource and action at the last colon, no segment may be empty, and
// every segment is either the wildcard or lowercase [a-z0-9_-].
type DefaultValidator struct{}

// Validate implements PermissionValidator.
func (DefaultValidator) Validate(value string) error {
	resource, action, ok := splitPermission(value)
	if !ok {
		return errors.Join(ErrInvalidPermission, errors.New("permission must be in resource:action format"))
	}
	if resource == "" || action == "" {
		return errors.Join(ErrInvalidPermission, errors.New("permission must not have empty segments"))
	}
	for _, segment := range strings.Split(resource, segmentSeparator) {
		if !isValidSegment(segment) {
			return errors.Join(ErrInvalidPermission, errors.New("resource segment contains invalid characters"))
		}
	}
	if !isValidSegment(action) {
		return errors.Join(ErrInvalidPermission, errors.New("action segment contains invalid characters"))
	}
	return nil
}

// NewPermission parses and validates a permission using the default
// validator. The value is trimmed and lowercased before validation.
func NewPermission(value string) (Permission, error) {
	return NewPermissionWith(value, DefaultValidator{}, true)
}

// NewPermissionWith parses and validates a permission with a custom
// validator. When normalize is true the value is trimmed and lowercased
// before validation.
func NewPermissionWith(value string, validator PermissionValidator, normalize bool) (Permission, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.Join(ErrInvalidPermission, errors.New("permission must not be empty"))
	}
	if normalize {
		trimmed = strings.ToLower(trimmed)
	}
	if validator == nil {
		validator = DefaultValidator{}
	}
	if err := validator.Validate(trimmed); err != nil {
		return "", err
	}
	return Permission(trimmed), nil
}

// Split returns the resource and action portions of the permission.
// It reports false when the permission contains no colon.
func (p Permission) Split() (resource, action string, ok bool) {
	return splitPermission(string(p))
}

// Resource returns the resource portion, or an empty string for an
// unsplittable permission.
func (p Permission) Resource() string {
	resource, _, _ := p.Split()
	return resource
}

// Action returns the action portion, or an empty string for an
// unsplittable permission.
func (p Permission) Action() string {
	_, action, _ := p.Split()
	return action
}

func (p Permission) String() string { return string(p) }

func splitPermission(value string) (resource, action string, ok bool) {
	idx := strings.LastIndexByte(value, ':')
	if idx < 0 {
		return "", "", false
	}
	return value[:idx], value[idx+1:], true
}

func isValidSegment(segment string) bool {
	if segment == Wildcard {
		return true
	}
	if segment == "" {
		return false
	}
	for _, ch := range segment {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= '0' && ch <= '9':
		case ch == '_' || ch == '-':
		default:
			return false
		}
	}
	return true
}
