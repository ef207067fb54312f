package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simonhull/optable/internal/catalog"
	"github.com/simonhull/optable/internal/output"
	"github.com/simonhull/optable/internal/watch"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <catalog>",
		Short: "Reload a catalog whenever the file changes",
		Long: `Loads a catalog, then rebuilds it each time the file is saved.
A save that breaks the catalog is reported and the last good catalog is kept.
On a terminal a live status line is shown; stop with q or Ctrl+C.

Example:
  optable watch ethport.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := watch.NewHolder(args[0], a.log, a.loadOptions()...)
			if err != nil {
				return err
			}
			defer h.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if output.IsTerminal(cmd.OutOrStdout()) {
				return watchInteractive(ctx, cmd, h)
			}
			return watchPlain(ctx, a.out, h)
		},
	}
}

// watchPlain and watchInteractive register their callbacks before Watch
// starts the event loop.
func watchPlain(ctx context.Context, out *output.Printer, h *watch.Holder) error {
	out.Success(fmt.Sprintf("%s: %d items loaded", h.Path(), h.Get().Len()))
	h.OnChange(func(cat *catalog.Catalog) {
		out.Success(fmt.Sprintf("%s: reloaded %d items", h.Path(), cat.Len()))
	})
	h.OnFailure(func(err error) {
		out.Error("reload failed, keeping previous catalog: " + err.Error())
	})

	if err := h.Watch(); err != nil {
		return err
	}
	out.Info("Watching for changes, press Ctrl+C to stop")

	<-ctx.Done()
	out.Verbose("watch stopped")
	return nil
}

func watchInteractive(ctx context.Context, cmd *cobra.Command, h *watch.Holder) error {
	m := output.NewWatchStatus(h.Path(), h.Get().Len())
	p := tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout()), tea.WithContext(ctx))

	h.OnChange(func(cat *catalog.Catalog) {
		p.Send(output.ReloadMsg{Items: cat.Len()})
	})
	h.OnFailure(func(err error) {
		p.Send(output.ReloadMsg{Err: err})
	})

	if err := h.Watch(); err != nil {
		return err
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch display: %w", err)
	}
	return nil
}
