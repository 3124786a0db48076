package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		info, ok := debug.ReadBuildInfo()
		if ok && v == "(devel)" && info.Main.Version != "" {
			v = info.Main.Version
		}
		fmt.Println("alfanumrik", v)
		if !ok {
			return
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" || s.Key == "vcs.time" {
				fmt.Printf("  %s %s\n", s.Key, s.Value)
			}
		}
		fmt.Println("  go", info.GoVersion)
	},
}
