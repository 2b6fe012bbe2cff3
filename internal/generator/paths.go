package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a route to its on-disk artifact. Routes are directory
// shaped, so every page lands in <route>/index.html.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// normalizeOutputDir trims whitespace and trailing separators. Absolute
// directories keep their leading slash so the storage provider can route
// them outside its root.
func normalizeOutputDir(dir string) string {
	clean := strings.TrimSpace(dir)
	for len(clean) > 1 && strings.HasSuffix(clean, "/") {
		clean = strings.TrimSuffix(clean, "/")
	}
	return clean
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(base, rel)
}
