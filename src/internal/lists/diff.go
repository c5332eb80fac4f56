package lists

import (
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

// Diff reports which desired prefixes are missing from current (added) and
// which current prefixes are absent from desired (removed). Entries are
// compared by network, so "192.0.2.1" and "192.0.2.1/32" are equal.
func Diff(current, desired []string) (added, removed []string) {
	currentKeys := make(map[string]struct{}, len(current))
	for _, p := range current {
		currentKeys[prefixKey(p)] = struct{}{}
	}

	desiredKeys := make(map[string]struct{}, len(desired))
	for _, p := range desired {
		key := prefixKey(p)
		desiredKeys[key] = struct{}{}
		if _, ok := currentKeys[key]; !ok {
			added = append(added, p)
		}
	}

	for _, p := range current {
		if _, ok := desiredKeys[prefixKey(p)]; !ok {
			removed = append(removed, p)
		}
	}

	return added, removed
}

func prefixKey(value string) string {
	if prefix, err := utils.ParseNetworkPrefix(value); err == nil {
		return prefix.String()
	}
	return value
}
