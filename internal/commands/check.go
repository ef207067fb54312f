package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/optable/internal/catalog"
)

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <catalog>",
		Short: "Validate a catalog and report every broken item",
		Long: `Builds every item of a catalog independently and reports all
failures instead of stopping at the first one.

Example:
  optable check ethport.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.loadOptions()
			path := catalog.Resolve(args[0], opts...)
			a.out.Verbose("Checking catalog: " + path)

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read catalog file: %w", err)
			}

			doc, err := catalog.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			cat, err := catalog.NewLoader(catalog.WithLogger(a.log)).ParseAll(doc)
			if err != nil {
				var errs catalog.BuildErrors
				if !errors.As(err, &errs) {
					return err
				}
				a.out.Error(fmt.Sprintf("%s: %d of %d items failed", path, len(errs), doc.Len()))
				for _, e := range errs {
					a.out.Step(e.Error())
				}
				return fmt.Errorf("%s has %d build errors", path, len(errs))
			}

			a.out.Success(fmt.Sprintf("%s: %d items OK", path, cat.Len()))
			return nil
		},
	}
}
