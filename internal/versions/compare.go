// Package versions compares dotted plugin version strings and checks
// Minecraft platform compatibility.
package versions

import (
	"strconv"
	"strings"
)

// Compare reports whether newVersion is strictly ahead of oldVersion.
//
// Both strings are split on "." and compared component by component as
// integers; a missing trailing component counts as 0. The second return value
// is false when either input is empty, meaning the outcome is unknown.
// Callers are expected to strip non-numeric suffixes beforehand.
func Compare(oldVersion, newVersion string) (newer bool, ok bool) {
	if oldVersion == "" || newVersion == "" {
		return false, false
	}

	oldParts := strings.Split(oldVersion, ".")
	newParts := strings.Split(newVersion, ".")

	for i := 0; i < max(len(oldParts), len(newParts)); i++ {
		o := component(oldParts, i)
		n := component(newParts, i)
		if n > o {
			return true, true
		}
		if n < o {
			return false, true
		}
	}

	return false, true
}

// component returns the integer value at position i, or 0 when the position
// is missing or not a number.
func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return v
}
