package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/phanxgames/galleria"
	"github.com/rwcarlsen/goexif/exif"
)

// DefaultPattern matches the image formats the file decoder understands.
const DefaultPattern = "**/*.{jpg,jpeg,JPG,JPEG,png,PNG,gif,GIF,webp,WEBP}"

// FromDir collects the files under root matching pattern, a doublestar
// glob relative to root, in lexical path order. An empty pattern means
// DefaultPattern. Alt text comes from the EXIF ImageDescription when the
// file carries one.
func FromDir(root, pattern string) ([]galleria.Photo, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("reading photo directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	sort.Strings(matches)

	photos := make([]galleria.Photo, 0, len(matches))
	for _, m := range matches {
		photos = append(photos, photo(filepath.Join(root, filepath.FromSlash(m)), describe(fsys, m)))
	}
	return photos, nil
}

// describe returns the EXIF ImageDescription of name, or "".
func describe(fsys fs.FS, name string) string {
	f, err := fsys.Open(name)
	if err != nil {
		return ""
	}
	defer f.Close()
	x, err := exif.Decode(f)
	if err != nil {
		return ""
	}
	tag, err := x.Get(exif.ImageDescription)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimRight(s, "\x00 ")
}
