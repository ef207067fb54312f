package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/optable"
	"github.com/simonhull/optable/internal/types"
)

func typesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the type names a field may convert to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.out.Info("Supported field types:")
			a.out.Types(types.Names())
		},
	}
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the optable version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.out.Info("optable " + optable.Version)
		},
	}
}
