// utils.go
//
// This file contains general utility functions.

package lasermaze

// containsInt reports whether a slice of cell indices contains v
func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// pruneIndices returns the orientation ordinals in s that are not in
// forbidden, preserving order
func pruneIndices(s []int, forbidden []int) []int {
	result := make([]int, 0, len(s))
	for _, idx := range s {
		if !containsInt(forbidden, idx) {
			result = append(result, idx)
		}
	}
	return result
}
