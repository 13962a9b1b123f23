package shortlink

import "strings"

// reservedPaths are top-level routes owned by the application itself. A path
// whose single segment matches one of these never resolves as a short link.
var reservedPaths = map[string]struct{}{
	"api":          {},
	"docs":         {},
	"favicon.ico":  {},
	"health":       {},
	"openapi.json": {},
	"openapi.yaml": {},
	"robots.txt":   {},
	"schemas":      {},
	"sitemap.xml":  {},
	"static":       {},
	"_next":        {},
}

// ExtractID returns the short identifier embedded in a request path, or the
// empty string when the path is not a short-link path. Only single-segment
// paths qualify; the root path, reserved routes, and multi-segment paths all
// yield "".
func ExtractID(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}

	// Multi-segment paths are never short links.
	if strings.Contains(trimmed, "/") {
		return ""
	}

	if _, ok := reservedPaths[strings.ToLower(trimmed)]; ok {
		return ""
	}

	return trimmed
}
