package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportsPlatform reports whether a plugin whose newest tested game version is
// supported can be used on the game version named by query.
//
// The precision of query decides how loose the match is: "1.21.4" accepts
// 1.21.x at or above patch 4, "1.21" accepts 1.x at or above minor 21 and "1"
// accepts anything from major 1 upward.
func SupportsPlatform(query, supported string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if supported == "" {
		return false
	}

	var op string
	switch strings.Count(query, ".") {
	case 0:
		op = ">="
	case 1:
		op = "^"
	default:
		op = "~"
	}

	constraint, err := semver.NewConstraint(op + query)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(supported)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}
