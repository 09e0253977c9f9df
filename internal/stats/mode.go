// Package stats computes trip statistics and renders them as text.
package stats

import "sort"

// Group is one distinct key and how often it occurred.
type Group[K comparable] struct {
	Key   K
	Count int
}

// GroupCounts counts the keys of n items, skipping items whose key is not
// valid. Groups are ordered by descending count; equal counts keep the order
// in which their keys were first seen.
func GroupCounts[K comparable](n int, key func(i int) (K, bool)) []Group[K] {
	index := make(map[K]int)
	groups := make([]Group[K], 0)
	for i := 0; i < n; i++ {
		k, ok := key(i)
		if !ok {
			continue
		}
		if at, seen := index[k]; seen {
			groups[at].Count++
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group[K]{Key: k, Count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// Mode returns the most frequent key among n items. Ties go to the key seen
// first. ok is false when no item has a valid key.
func Mode[K comparable](n int, key func(i int) (K, bool)) (value K, count int, ok bool) {
	groups := GroupCounts(n, key)
	if len(groups) == 0 {
		return value, 0, false
	}
	return groups[0].Key, groups[0].Count, true
}
