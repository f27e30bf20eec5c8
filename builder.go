package gotenant

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DefaultMaxInheritDepth is the default bound on role inheritance depth.
const DefaultMaxInheritDepth = 16

// Builder configures and constructs an Engine. A builder is single-use:
// Build returns ErrBuilderUsed on a second call.
type Builder struct {
	store     Store
	cache     Cache
	validator PermissionValidator

	roleHierarchy   bool
	wildcard        bool
	maxInheritDepth int
	normalize       bool

	built bool
}

// NewBuilder creates a builder with defaults: role hierarchy off, wildcard
// matching off, max inherit depth 16, permission normalization on, and a
// no-op cache.
func NewBuilder(store Store) *Builder {
	return &Builder{
		store:           store,
		cache:           NopCache{},
		validator:       DefaultValidator{},
		maxInheritDepth: DefaultMaxInheritDepth,
		normalize:       true,
	}
}

// EnableRoleHierarchy enables or disables role inheritance expansion.
func (b *Builder) EnableRoleHierarchy(on bool) *Builder {
	b.roleHierarchy = on
	return b
}

// EnableWildcard enables or disables wildcard permission matching. While
// disabled, granted permissions containing a wildcard segment are inert.
func (b *Builder) EnableWildcard(on bool) *Builder {
	b.wildcard = on
	return b
}

// MaxInheritDepth sets the maximum role inheritance depth.
func (b *Builder) MaxInheritDepth(depth int) *Builder {
	b.maxInheritDepth = depth
	return b
}

// NormalizePermissions enables or disables lowercasing of both operands
// during matching. This is independent of normalization at permission
// construction time.
func (b *Builder) NormalizePermissions(on bool) *Builder {
	b.normalize = on
	return b
}

// WithCache sets the cache implementation shared by this engine.
func (b *Builder) WithCache(cache Cache) *Builder {
	b.cache = cache
	return b
}

// WithValidator sets the permission validator used by Engine.ParsePermission.
func (b *Builder) WithValidator(validator PermissionValidator) *Builder {
	b.validator = validator
	return b
}

// FromConfig applies the engine fields of an environment-derived Config.
func (b *Builder) FromConfig(cfg Config) *Builder {
	b.roleHierarchy = cfg.RoleHierarchy
	b.wildcard = cfg.Wildcard
	b.maxInheritDepth = cfg.MaxInheritDepth
	b.normalize = cfg.PermissionNormalize
	return b
}

// Build validates the configuration and constructs the engine. The engine's
// cache signature is derived deterministically from the configuration tuple,
// so two engines built with equal settings produce interchangeable cache
// entries and differently-configured engines never consume each other's.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	if b.store == nil {
		return nil, ErrNilStore
	}
	if b.maxInheritDepth <= 0 {
		return nil, ErrInvalidDepth
	}
	b.built = true

	cache := b.cache
	if cache == nil {
		cache = NopCache{}
	}
	validator := b.validator
	if validator == nil {
		validator = DefaultValidator{}
	}

	return &Engine{
		store:           b.store,
		cache:           cache,
		validator:       validator,
		signature:       configSignature(b.roleHierarchy, b.wildcard, b.maxInheritDepth, b.normalize),
		roleHierarchy:   b.roleHierarchy,
		wildcard:        b.wildcard,
		maxInheritDepth: b.maxInheritDepth,
		normalize:       b.normalize,
	}, nil
}

// configSignature encodes the configuration tuple canonically and hashes it.
// The first 16 bytes of the SHA-256 sum are enough to make cross-config
// collisions implausible while keeping cache entries small.
func configSignature(roleHierarchy, wildcard bool, maxDepth int, normalize bool) string {
	canonical := fmt.Sprintf("rh=%t;wc=%t;depth=%d;norm=%t", roleHierarchy, wildcard, maxDepth, normalize)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}
