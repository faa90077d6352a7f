package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/galleria/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "galleria",
	Short: "Zoomable photo gallery viewer",
	Long: `galleria shows a collection of photos one at a time with a thumbnail
strip, wheel zoom about the cursor, keyboard navigation and fullscreen.
Photos come from an HTML page (elements marked data-photo), a directory
tree or a SQLite catalog.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log viewer activity and frame stats to stderr")
}

// loadConfig reads the config file and applies persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
