package http

import "strings"

// ---- helpers ----

// isAPIPath reports whether errors on path should be rendered as JSON.
func isAPIPath(path string) bool {
	return strings.Contains(path, "/api/") || path == "/health"
}
