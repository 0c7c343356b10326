package plugin

import (
	"regexp"
	"strings"
)

var (
	nameSeparators    = regexp.MustCompile(`[_-]`)
	segmentSeparators = regexp.MustCompile(`[_.-]`)
	alphabetic        = regexp.MustCompile(`^[a-zA-Z]+$`)
	nonVersion        = regexp.MustCompile(`[^0-9.]`)
)

// FileRef is a jar found in a plugins folder together with the identity
// guessed from its file name.
type FileRef struct {
	FileName      string
	CandidateName string
	VersionToken  string
}

// Extract guesses a plugin name and version from a jar file name.
//
// The name is the text before the first "_" or "-", followed by the next
// word when that word is purely alphabetic ("Multi_Verse_Core-4.2.1.jar"
// becomes "Multi Verse"). The version keeps only digits and dots of
// everything after the first separator.
func Extract(fileName string) FileRef {
	segments := nameSeparators.Split(fileName, -1)

	name := segments[0]
	if words := segmentSeparators.Split(fileName, -1); len(words) > 1 && alphabetic.MatchString(words[1]) {
		name += " " + words[1]
	}
	name = strings.Replace(name, ".jar", "", 1)
	name = strings.Replace(name, " jar", "", 1)

	rest := strings.Join(segments[1:], "-")
	rest = strings.Replace(rest, ".jar", "", 1)
	version := NormalizeVersion(rest)

	return FileRef{
		FileName:      fileName,
		CandidateName: name,
		VersionToken:  version,
	}
}

// NormalizeVersion keeps only the digits and dots of a version string, so
// "v2.21.0" and "5.4.102-SNAPSHOT" compare as "2.21.0" and "5.4.102".
func NormalizeVersion(s string) string {
	return strings.TrimPrefix(nonVersion.ReplaceAllString(s, ""), ".")
}

// FirstToken returns the lowercase text of s up to the first character that
// is not an ASCII letter or digit.
func FirstToken(s string) string {
	s = strings.ToLower(s)
	if i := strings.IndexFunc(s, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}); i >= 0 {
		return s[:i]
	}
	return s
}

// FirstWord returns the text of s before the first space.
func FirstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
