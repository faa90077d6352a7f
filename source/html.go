package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/galleria"
	"golang.org/x/net/html"
)

// PhotoAttr marks the elements of a page that belong to the gallery.
const PhotoAttr = "data-photo"

// FromHTML collects the photos of a page: every element carrying the
// data-photo attribute, in document order. src is resolved against baseDir
// and a missing alt becomes galleria.DefaultAltText. Marked elements
// without a src are skipped.
func FromHTML(r io.Reader, baseDir string) ([]galleria.Photo, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var photos []galleria.Photo
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p, ok := photoFromElement(n, baseDir); ok {
				photos = append(photos, p)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return photos, nil
}

// FromHTMLFile reads a page from disk. Relative sources resolve against the
// page's directory unless baseDir is set.
func FromHTMLFile(path, baseDir string) ([]galleria.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}
	return FromHTML(f, baseDir)
}

func photoFromElement(n *html.Node, baseDir string) (galleria.Photo, bool) {
	var marked bool
	var src, alt string
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case PhotoAttr:
			marked = true
		case "src":
			src = strings.TrimSpace(a.Val)
		case "alt":
			alt = a.Val
		}
	}
	if !marked || src == "" {
		return galleria.Photo{}, false
	}
	return photo(resolve(src, baseDir), alt), true
}
