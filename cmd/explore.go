package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/ui"
)

// suggestLimit caps "did you mean" names.
const suggestLimit = 5

var exploreCmd = &cobra.Command{
	Use:     "explore <raga>",
	Short:   "Show the graha bhedam of a catalog raga",
	Example: "  graha explore mohanam",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runExplore,
}

var infoCmd = &cobra.Command{
	Use:   "info <raga>",
	Short: "Describe a catalog raga",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

var relationsCmd = &cobra.Command{
	Use:   "relations <raga>",
	Short: "List a raga's melakarta and that melakarta's janyas",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRelations,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(relationsCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.Join(args, " ")
	rep, err := s.explorer.GrahaBhedam(name)
	if err := checkResolved(printer, s, name, rep.Resolution, err); err != nil {
		return err
	}
	printer.Report(rep)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.Join(args, " ")
	info, err := s.explorer.Describe(name)
	if err := checkResolved(printer, s, name, info.Resolution, err); err != nil {
		return err
	}
	printer.RagaInfo(info)
	return nil
}

func runRelations(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.Join(args, " ")
	rel, err := s.explorer.Relations(name)
	if err := checkResolved(printer, s, name, rel.Resolution, err); err != nil {
		return err
	}
	printer.Relations(rel)
	return nil
}

// checkResolved reports how name resolved. An unknown name is shown with
// suggestions and returned as an already reported error.
func checkResolved(printer *ui.Printer, s *session, name string, res explore.Resolution, err error) error {
	if errors.Is(err, explore.ErrUnknownRaga) {
		printer.Resolved(res, s.explorer.Suggest(name, suggestLimit))
		return reported(err)
	}
	printer.Resolved(res, nil)
	return err
}
