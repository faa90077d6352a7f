// Package source collects photo lists for the viewer from an HTML page, a
// directory tree or a SQLite catalog. Every source returns photos in a
// stable order, which becomes the viewer's navigation order.
package source

import (
	"path/filepath"
	"strings"

	"github.com/phanxgames/galleria"
)

// resolve maps a photo reference onto the local filesystem. URLs with a
// scheme are kept as they are. Site-rooted paths ("/static/a.jpg") and
// relative paths are joined to baseDir when one is given.
func resolve(src, baseDir string) string {
	if strings.Contains(src, "://") || strings.HasPrefix(src, "data:") || baseDir == "" {
		return src
	}
	return filepath.Join(baseDir, filepath.FromSlash(strings.TrimPrefix(src, "/")))
}

func photo(src, alt string) galleria.Photo {
	return galleria.NewPhoto(src, strings.TrimSpace(alt))
}
