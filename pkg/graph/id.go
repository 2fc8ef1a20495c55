package graph

import "fmt"

// UniqueID returns desired if taken reports it free, otherwise the first
// of desired_1, desired_2, … that is free. The same scheme applies to
// entity and transition id collisions.
func UniqueID(desired string, taken func(string) bool) string {
	if !taken(desired) {
		return desired
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", desired, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
