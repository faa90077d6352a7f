package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/galleria"
	"github.com/phanxgames/galleria/config"
	"github.com/phanxgames/galleria/source"
	"github.com/spf13/cobra"
)

// sourceFlags override the configured photo source.
type sourceFlags struct {
	html    string
	dir     string
	catalog string
	pattern string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.html, "html", "", "collect photos from an HTML page")
	cmd.Flags().StringVar(&f.dir, "dir", "", "collect photos from a directory tree")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "collect photos from a SQLite catalog")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "glob for --dir (default all supported images)")
	cmd.MarkFlagsMutuallyExclusive("html", "dir", "catalog")
}

// apply overrides cfg.Source from flags, then from a positional path whose
// kind is guessed from its extension.
func (f *sourceFlags) apply(cfg *config.Config, args []string) error {
	switch {
	case f.html != "":
		cfg.Source = config.SourceConfig{Kind: config.SourceHTML, Path: f.html}
	case f.dir != "":
		cfg.Source = config.SourceConfig{Kind: config.SourceDir, Path: f.dir}
	case f.catalog != "":
		cfg.Source = config.SourceConfig{Kind: config.SourceCatalog, Path: f.catalog}
	case len(args) > 0:
		kind, err := guessKind(args[0])
		if err != nil {
			return err
		}
		cfg.Source = config.SourceConfig{Kind: kind, Path: args[0]}
	}
	if f.pattern != "" {
		cfg.Source.Pattern = f.pattern
	}
	return nil
}

func guessKind(path string) (config.SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return config.SourceHTML, nil
	case ".db", ".sqlite", ".sqlite3":
		return config.SourceCatalog, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a page, catalog or directory", path)
	}
	return config.SourceDir, nil
}

// loadPhotos collects the photo list from the configured source.
func loadPhotos(ctx context.Context, src config.SourceConfig) ([]galleria.Photo, error) {
	switch src.Kind {
	case config.SourceHTML:
		return source.FromHTMLFile(src.Path, src.BaseDir)
	case config.SourceDir:
		return source.FromDir(src.Path, src.Pattern)
	case config.SourceCatalog:
		c, err := source.OpenCatalog(src.Path)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return c.Photos(ctx)
	}
	return nil, fmt.Errorf("unknown source kind %q", src.Kind)
}
