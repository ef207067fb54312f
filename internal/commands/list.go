package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <catalog>",
		Short: "List every item of a catalog with its kind",
		Long: `Loads a catalog and lists its items.

The extension can be omitted; the configured default is appended.

Examples:
  optable list ethport.yml
  optable list ethport`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.load(args[0])
			if err != nil {
				return err
			}

			a.out.Catalog(cat)
			a.out.Info(fmt.Sprintf("%d items", cat.Len()))
			return nil
		},
	}
}
