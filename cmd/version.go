package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/learnflix/learnflix/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if !semver.IsValid(v) {
			v += " (development build)"
		}
		fmt.Println("learnflix", v)
		fmt.Printf("catalog format %s.x\n", catalog.SupportedMajor)
	},
}
