// Command galleria browses a photo collection in a zoomable viewer window.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
