package main

import (
	"fmt"

	"github.com/phanxgames/galleria/config"
	"github.com/phanxgames/galleria/source"
	"github.com/spf13/cobra"
)

var importPattern string

var importCmd = &cobra.Command{
	Use:   "import <catalog.db> <page.html|dir>...",
	Short: "Append photos from pages or directories to a catalog",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := source.OpenCatalog(args[0])
		if err != nil {
			return err
		}
		defer c.Close()

		total := 0
		for _, path := range args[1:] {
			kind, err := guessKind(path)
			if err != nil {
				return err
			}
			if kind == config.SourceCatalog {
				return fmt.Errorf("%s: cannot import from a catalog", path)
			}
			src := config.SourceConfig{Kind: kind, Path: path, Pattern: importPattern}
			photos, err := loadPhotos(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := c.Import(cmd.Context(), photos); err != nil {
				return err
			}
			total += len(photos)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d photos into %s\n", total, args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importPattern, "pattern", "", "glob for directories (default all supported images)")
	rootCmd.AddCommand(importCmd)
}
