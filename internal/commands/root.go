package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/optable"
	"github.com/simonhull/optable/internal/catalog"
	"github.com/simonhull/optable/internal/config"
	"github.com/simonhull/optable/internal/logger"
	"github.com/simonhull/optable/internal/output"
)

// app carries the state every command shares, set up before each run
type app struct {
	verbose    bool
	configPath string

	cfg *config.Config
	log logger.Logger
	out *output.Printer
}

func (a *app) setup(cmd *cobra.Command) error {
	a.out = output.New(cmd.OutOrStdout())
	a.out.SetVerbose(a.verbose)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logger.LevelDebug
	}
	a.log = logger.NewLogger(level, cmd.ErrOrStderr())

	a.out.Verbose(fmt.Sprintf("config: extension=%s search_paths=%v log_level=%s", cfg.DefaultExtension, cfg.SearchPaths, level))
	return nil
}

// loadOptions maps the config onto catalog loading
func (a *app) loadOptions() []catalog.LoadOption {
	return []catalog.LoadOption{
		catalog.WithDefaultExtension(a.cfg.DefaultExtension),
		catalog.WithSearchPaths(a.cfg.SearchPaths...),
		catalog.WithLoaderOptions(catalog.WithLogger(a.log)),
	}
}

func (a *app) load(path string) (*catalog.Catalog, error) {
	opts := a.loadOptions()
	a.out.Verbose("Loading catalog from: " + catalog.Resolve(path, opts...))
	return catalog.Load(path, opts...)
}

// RootCmd creates the root command for the optable CLI with every subcommand attached
func RootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "optable",
		Short: "Inspect and validate YAML table/view catalogs",
		Long: `optable loads YAML catalogs of operational tables and views and
reports what they define.

A catalog maps item names to definitions:
• get-tables carry an rpc and fetch data themselves
• tables carry an item path and select rows of a parent
• views declare the fields extracted from each row

Every reference between items is resolved when the catalog loads.`,
		Version:       optable.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ./"+config.FileName+")")

	cmd.AddCommand(listCmd(a))
	cmd.AddCommand(showCmd(a))
	cmd.AddCommand(checkCmd(a))
	cmd.AddCommand(watchCmd(a))
	cmd.AddCommand(typesCmd(a))
	cmd.AddCommand(versionCmd(a))

	return cmd
}

// Execute runs the CLI and prints any error
func Execute() error {
	cmd := RootCmd()
	if err := cmd.Execute(); err != nil {
		output.New(os.Stderr).Error(err.Error())
		return err
	}
	return nil
}
