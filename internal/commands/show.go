package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <catalog> <item>",
		Short: "Show the definition of one item",
		Long: `Loads a catalog and prints one item in detail: rpc or item path,
options, the view and its fields with their types and groups.

Example:
  optable show ethport.yml EthPortTable`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.load(args[0])
			if err != nil {
				return err
			}

			cls, ok := cat.Get(args[1])
			if !ok {
				return fmt.Errorf("item %q not found in %s", args[1], args[0])
			}

			a.out.Item(cls)
			return nil
		},
	}
}
