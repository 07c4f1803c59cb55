package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/config"
	"github.com/papapumpkin/graha/internal/explore"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check and convert raga catalogs",
	Long: `Catalog commands work on the configured catalog source: the builtin
catalog, a TOML file (--catalog), or a SQL database (--catalog-dsn).`,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Index the catalog and report data-quality issues",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCheck,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <file.toml>",
	Short: "Write the configured catalog as TOML (\"-\" for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogExport,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Replace the SQL catalog (--catalog-dsn) with a TOML file",
	Example: `  graha catalog import ragas.toml --catalog-dsn ragas.db
  graha catalog import ragas.toml --catalog-driver mysql --catalog-dsn 'root@tcp(127.0.0.1:3306)/ragas'`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func init() {
	catalogCheckCmd.Flags().Bool("strict", false, "exit non-zero when issues are found")
	catalogCmd.AddCommand(catalogCheckCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogCheck(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	src := cfg.Source()
	f, err := catalog.Load(cmd.Context(), src)
	if err != nil {
		return err
	}

	c := explore.NewCatalog(src.Describe(), f)
	printer.CatalogLoaded(c)
	printer.CatalogIssues(c.Issues)

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(c.Issues) > 0 {
		return reported(fmt.Errorf("catalog: %d issue(s)", len(c.Issues)))
	}
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	src := cfg.Source()
	f, err := catalog.Load(cmd.Context(), src)
	if err != nil {
		return err
	}

	data, err := catalog.MarshalFile(f)
	if err != nil {
		return err
	}
	if args[0] == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", args[0], err)
	}
	printer.Info(fmt.Sprintf("exported %d ragas from %s to %s", len(f.Ragas), src.Describe(), args[0]))
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.CatalogDSN == "" {
		return fmt.Errorf("catalog import: --catalog-dsn (or catalog_dsn) is required")
	}

	f, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	if len(f.Ragas) == 0 {
		return fmt.Errorf("catalog import: %s: %w", args[0], catalog.ErrNoCatalog)
	}

	// Issues are reported but do not block the import.
	if c := explore.NewCatalog(args[0], f); len(c.Issues) > 0 {
		printer.CatalogIssues(c.Issues)
	}

	ctx := cmd.Context()
	st, err := catalog.OpenStore(ctx, cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(ctx, f); err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("imported %d ragas into %s", len(f.Ragas), st))
	return nil
}
