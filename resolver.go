package gotenant

import (
	"context"
	"errors"
	"fmt"
)

// expandFrame is one level of the iterative inheritance traversal: a role,
// its depth from the traversal root, and a cursor over its direct parents.
type expandFrame struct {
	role    RoleID
	depth   int
	parents []RoleID
	next    int
}

// expandRoles resolves the full inheritance closure of the given direct
// roles within a tenant. The traversal is an explicit-stack depth-first walk
// with two sets: visiting holds roles on the active path (a parent edge back
// into it is a cycle), visited holds roles whose subtree is fully expanded
// (reaching one again via a different path is skipped without error). Output
// is deduplicated; each role appears exactly once regardless of diamonds.
func (e *Engine) expandRoles(ctx context.Context, tenant TenantID, direct []RoleID) ([]RoleID, error) {
	visited := make(map[RoleID]struct{})
	visiting := make(map[RoleID]struct{})
	output := make([]RoleID, 0, len(direct))

	for _, role := range direct {
		if _, ok := visited[role]; ok {
			continue
		}
		var err error
		output, err = e.expandFromRole(ctx, tenant, role, visited, visiting, output)
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

func (e *Engine) expandFromRole(ctx context.Context, tenant TenantID, root RoleID, visited, visiting map[RoleID]struct{}, output []RoleID) ([]RoleID, error) {
	parents, err := e.store.RoleInherits(ctx, tenant, root)
	if err != nil {
		return nil, storeError(err)
	}
	visiting[root] = struct{}{}
	output = append(output, root)

	stack := []expandFrame{{role: root, parents: parents}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.parents) {
			delete(visiting, top.role)
			visited[top.role] = struct{}{}
			stack = stack[:len(stack)-1]
			continue
		}

		parent := top.parents[top.next]
		top.next++

		nextDepth := top.depth + 1
		if nextDepth > e.maxInheritDepth {
			return nil, errors.Join(ErrInheritDepthExceeded,
				fmt.Errorf("tenant %s: role %s exceeds max depth %d", tenant, parent, e.maxInheritDepth))
		}
		if _, ok := visiting[parent]; ok {
			return nil, errors.Join(ErrRoleCycle,
				fmt.Errorf("tenant %s: cycle at role %s", tenant, parent))
		}
		if _, ok := visited[parent]; ok {
			continue
		}

		grandparents, err := e.store.RoleInherits(ctx, tenant, parent)
		if err != nil {
			return nil, storeError(err)
		}
		visiting[parent] = struct{}{}
		output = append(output, parent)
		stack = append(stack, expandFrame{role: parent, depth: nextDepth, parents: grandparents})
	}
	return output, nil
}
