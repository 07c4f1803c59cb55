package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/tui"
)

// tuiCmd launches the interactive raga browser.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog interactively",
	Long: `Launch the graha browser. Type a raga name or a swara pattern and press
enter to see its graha bhedam; tab switches to the melakarta/janya view.
With --watch, edits to the catalog file are picked up while browsing.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("watch", false, "reload the catalog when its file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tui.NewProgram(s.explorer)

	if watch, _ := cmd.Flags().GetBool("watch"); watch || s.cfg.Watch {
		stop, err := watchCatalog(cmd.Context(), s.explorer, s.cfg.Source(), func(c *explore.Catalog, err error) {
			if err != nil {
				p.Send(tui.MsgReloadFailed{Err: err})
				return
			}
			p.Send(tui.MsgCatalogReloaded{Source: c.Source, Entries: c.Index.Len(), Issues: len(c.Issues)})
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	return tui.Run(p)
}
