package fctable

import "sort"

// MatchedIDs returns the sorted intersection of two identifier sets. Samples
// present in only one source are dropped from joint analyses; the two dropped
// sets are returned so callers can report them.
func MatchedIDs(a, b []string) (matched, onlyA, onlyB []string) {
	inA := make(map[string]struct{}, len(a))
	for _, id := range a {
		inA[id] = struct{}{}
	}

	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}

	for id := range inA {
		if _, ok := inB[id]; ok {
			matched = append(matched, id)
		} else {
			onlyA = append(onlyA, id)
		}
	}

	for id := range inB {
		if _, ok := inA[id]; !ok {
			onlyB = append(onlyB, id)
		}
	}

	sort.Strings(matched)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	return matched, onlyA, onlyB
}
