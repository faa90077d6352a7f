package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listSource sourceFlags

var listCmd = &cobra.Command{
	Use:   "list [page.html|dir|catalog.db]",
	Short: "Print the photos the viewer would show, in order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := listSource.apply(cfg, args); err != nil {
			return err
		}
		photos, err := loadPhotos(cmd.Context(), cfg.Source)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tSOURCE\tALT")
		for i, p := range photos {
			fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, p.Source, p.AltText)
		}
		return w.Flush()
	},
}

func init() {
	listSource.register(listCmd)
	rootCmd.AddCommand(listCmd)
}
