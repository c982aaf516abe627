// Package caret is a rich-text editing core: positions and ranges over
// styled text (textpos, document), line layout (layout), an editing session
// (buffer), and adapters for Bubble Tea (editor) and LSP (lsp).
package caret

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version string in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version (with leading `v`).
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0. A leading `v` is accepted.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}

// ResolveVersion picks the version a binary reports: the build-time value
// when it is SemVer (with any `v` stripped), else the embedded Version.
func ResolveVersion(build string) string {
	build = strings.TrimSpace(build)
	if IsSemver(build) {
		return strings.TrimPrefix(build, "v")
	}
	return Version()
}
