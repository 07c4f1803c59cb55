package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
)

var shiftCmd = &cobra.Command{
	Use:   "shift <pattern>",
	Short: "Shift the tonic of a swara pattern and name the resulting scales",
	Long: `Shift rotates a swara pattern such as "S R2 G3 M1 P D2 N3" so that each of
its notes becomes the new S, and looks every resulting scale up in the
catalog.

A seven-note pattern keeps only results that use each swara once; shorter
patterns keep every reachable scale. Use --all-families or --subsets to
choose explicitly.`,
	Example: `  graha shift S R2 G3 M1 P D2 N3
  graha shift "S R2 G3 P D2" --parent Harikambhoji`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShift,
}

func init() {
	shiftCmd.Flags().Bool("all-families", false, "keep only scales covering all seven swaras once")
	shiftCmd.Flags().Bool("subsets", false, "keep every reachable scale, full or not")
	shiftCmd.Flags().String("parent", "", "raga whose melakarta biases ambiguous swaras")
	shiftCmd.MarkFlagsMutuallyExclusive("all-families", "subsets")
	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	pattern := strings.Join(args, " ")

	labels, err := swara.ParseScale(pattern)
	if err != nil {
		printer.InvalidSymbol(pattern, err)
		return reported(err)
	}

	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	var parent swara.LabelSet
	if name, _ := cmd.Flags().GetString("parent"); name != "" {
		res := s.explorer.Resolve(name)
		printer.Resolved(res, s.explorer.Suggest(name, suggestLimit))
		parent = s.explorer.ParentLabels(res.Name)
	}

	opts := graha.AutoOptions(labels, parent)
	if all, _ := cmd.Flags().GetBool("all-families"); all {
		opts.RequireAllFamilies = true
	}
	if subsets, _ := cmd.Flags().GetBool("subsets"); subsets {
		opts.RequireAllFamilies = false
	}

	results, err := s.explorer.FromPattern(pattern, opts)
	if err != nil {
		return err
	}
	printer.Results(results)
	return nil
}
