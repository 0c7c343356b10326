// Package filtering selects which jar files of a plugins folder are indexed.
//
// Patterns are globs matched against the jar file name, for example
// "*-SNAPSHOT.jar" or "Geyser*". Exclude patterns take precedence over
// include patterns:
//
//  1. If the name matches an exclude pattern it is skipped
//  2. If include patterns are given and the name matches one it is indexed
//  3. If include patterns are given but none match it is skipped
//  4. If no include patterns are given it is indexed
//
// Filters come from the index section of the configuration:
//
//	index:
//	  exclude: ["*-dev.jar", "spark*"]
package filtering
