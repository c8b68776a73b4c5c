package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/cmd/kps/internal/build"
	"github.com/Foxcapades/kps/pkg/cli"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("format") {
			return outputResult(build.Get(), cli.OutputFormat(format))
		}
		fmt.Println(build.String())
		if verbose {
			fmt.Printf("  go:     %s\n", build.Get().Go)
			if cfg, err := getConfig(); err == nil {
				fmt.Printf("  config: %s\n", cfg.Path())
			} else {
				fmt.Printf("  config: (unavailable: %v)\n", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
