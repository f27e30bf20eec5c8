package gotenant_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mztlive/gotenant"
)

func TestNewPermission(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    gotenant.Permission
		wantErr bool
	}{
		{name: "simple", input: "invoice:read", want: "invoice:read"},
		{name: "trims and lowercases", input: " Invoice:Read ", want: "invoice:read"},
		{name: "multi-segment resource", input: "invoice:sub:read", want: "invoice:sub:read"},
		{name: "wildcard action", input: "invoice:*", want: "invoice:*"},
		{name: "wildcard resource", input: "*:read", want: "*:read"},
		{name: "full wildcard", input: "*:*", want: "*:*"},
		{name: "empty", input: "", wantErr: true},
		{name: "no colon", input: "invoice", wantErr: true},
		{name: "empty resource", input: ":read", wantErr: true},
		{name: "empty action", input: "invoice:", wantErr: true},
		{name: "empty sub-segment", input: "invoice::read", wantErr: true},
		{name: "invalid action characters", input: "invoice:re ad", wantErr: true},
		{name: "invalid resource characters", input: "in.voice:read", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := gotenant.NewPermission(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, gotenant.ErrInvalidPermission)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPermissionWith(t *testing.T) {
	t.Parallel()

	t.Run("without normalization keeps case", func(t *testing.T) {
		t.Parallel()
		// Default validator rejects uppercase, so pass a permissive one.
		perm, err := gotenant.NewPermissionWith("Invoice:Read", allowAllValidator{}, false)
		require.NoError(t, err)
		assert.Equal(t, gotenant.Permission("Invoice:Read"), perm)
	})

	t.Run("without normalization default validator rejects uppercase", func(t *testing.T) {
		t.Parallel()
		_, err := gotenant.NewPermissionWith("Invoice:Read", gotenant.DefaultValidator{}, false)
		assert.ErrorIs(t, err, gotenant.ErrInvalidPermission)
	})

	t.Run("custom validator error surfaces", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("nope")
		_, err := gotenant.NewPermissionWith("invoice:read", rejectValidator{err: wantErr}, true)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("nil validator falls back to default", func(t *testing.T) {
		t.Parallel()
		perm, err := gotenant.NewPermissionWith("invoice:read", nil, true)
		require.NoError(t, err)
		assert.Equal(t, gotenant.Permission("invoice:read"), perm)
	})
}

func TestPermissionSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		permission gotenant.Permission
		resource   string
		action     string
		ok         bool
	}{
		{name: "simple", permission: "invoice:read", resource: "invoice", action: "read", ok: true},
		{name: "splits at last colon", permission: "invoice:sub:read", resource: "invoice:sub", action: "read", ok: true},
		{name: "no colon", permission: "invoice", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resource, action, ok := tt.permission.Split()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.resource, resource)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.resource, tt.permission.Resource())
			assert.Equal(t, tt.action, tt.permission.Action())
		})
	}
}

type allowAllValidator struct{}

func (allowAllValidator) Validate(string) error { return nil }

type rejectValidator struct{ err error }

func (v rejectValidator) Validate(string) error { return v.err }
