package utils

import (
	"strings"

	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a version string for terminal printing.
// Pre-release parts (like "-RC1" or "-SNAPSHOT") are dimmed
func PrettyVersion(version string) string {
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	versionParts := strings.SplitN(version, "-", 2)
	prettyVersion := versionParts[0]

	if version == "" {
		prettyVersion = gchalk.Gray("none")
	} else if len(versionParts) == 2 {
		prettyVersion += gchalk.Dim("-" + versionParts[1])
	}

	return prettyVersion
}
