package admin

import "strings"

// List-field editor: add/remove for array-valued draft attributes
// (technologies, tags, skills). List order is insertion order; there is
// no implicit sorting.

// AddListValue trims the candidate and appends it to the list. The add
// is a no-op when the trimmed candidate is empty or already present.
//
// The duplicate check is an exact, case-sensitive match: "React" and
// "react" are distinct entries. That mirrors the admin surface's
// observed behavior and is asserted as documented behavior in the tests.
func AddListValue(list []string, candidate string) ([]string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return list, false
	}
	for _, existing := range list {
		if existing == candidate {
			return list, false
		}
	}
	return append(list, candidate), true
}

// RemoveListValue removes the first exact match of value from the list.
// A no-op if the value is absent.
func RemoveListValue(list []string, value string) ([]string, bool) {
	for i, existing := range list {
		if existing == value {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
