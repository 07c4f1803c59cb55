package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/explore"
)

var matchCmd = &cobra.Command{
	Use:   "match <query>",
	Short: "Resolve a loosely spelled raga name",
	Long: `Match resolves a raga name typed in any common transliteration. It tries
the alias table, then an exact, prefix, and substring match on the normalized
name, and finally the closest name within two edits.`,
	Example: "  graha match shankarabharanam",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runMatch,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog raga names",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("kind", "", "only list this kind (melakarta or janya)")
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(listCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	query := strings.Join(args, " ")
	m, ok := s.explorer.Catalog().Matcher.Match(query)
	printer.Match(query, m, ok)
	if !ok {
		printer.Resolved(explore.Resolution{Query: query, Name: query}, s.explorer.Suggest(query, suggestLimit))
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	var kind catalog.Kind
	if k, _ := cmd.Flags().GetString("kind"); k != "" {
		if err := kind.UnmarshalText([]byte(k)); err != nil {
			return err
		}
	}

	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.Close()

	printer.Names(s.explorer.List(kind))
	return nil
}
