package gotenant

import "strings"

// Matches reports whether a granted permission satisfies a required one.
//
// When wildcard is false, any wildcard segment on the granted side makes it
// inert: it matches nothing, not even an identically wildcarded requirement.
// Otherwise matching is exact equality of resource and action. When wildcard
// is true, "*" on either side of the granted permission matches any value of
// that half. Both operands must split into resource:action; unsplittable
// values never match.
func Matches(granted, required Permission, wildcard, normalize bool) bool {
	gRes, gAct, ok := granted.Split()
	if !ok {
		return false
	}
	rRes, rAct, ok := required.Split()
	if !ok {
		return false
	}
	if !wildcard && hasWildcardSegment(gRes, gAct) {
		return false
	}
	if normalize {
		gRes, gAct = strings.ToLower(gRes), strings.ToLower(gAct)
		rRes, rAct = strings.ToLower(rRes), strings.ToLower(rAct)
	}
	if !wildcard {
		return gRes == rRes && gAct == rAct
	}
	switch {
	case gRes == Wildcard && gAct == Wildcard:
		return true
	case gRes == Wildcard:
		return gAct == rAct
	case gAct == Wildcard:
		return gRes == rRes
	default:
		return gRes == rRes && gAct == rAct
	}
}

// MatchesResource reports whether a granted permission covers a resource,
// ignoring the action. It applies the same wildcard-exclusion policy as
// Matches: a wildcard segment anywhere on the granted side makes the whole
// permission inert while wildcard matching is disabled.
func MatchesResource(granted Permission, resource ResourceName, wildcard, normalize bool) bool {
	gRes, gAct, ok := granted.Split()
	if !ok {
		return false
	}
	if !wildcard && hasWildcardSegment(gRes, gAct) {
		return false
	}
	name := string(resource)
	if normalize {
		gRes = strings.ToLower(gRes)
		name = strings.ToLower(name)
	}
	if !wildcard {
		return gRes == name
	}
	if gRes == Wildcard {
		return true
	}
	return gRes == name
}

// hasWildcardSegment reports whether the action or any colon-delimited
// sub-segment of the resource is the wildcard.
func hasWildcardSegment(resource, action string) bool {
	if action == Wildcard {
		return true
	}
	for _, segment := range strings.Split(resource, segmentSeparator) {
		if segment == Wildcard {
			return true
		}
	}
	return false
}
