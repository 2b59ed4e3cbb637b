package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd)
			fmt.Printf("%s %s (%s, %s/%s)\n", cfg.App.Name, cfg.App.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
