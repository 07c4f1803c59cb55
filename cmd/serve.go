package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve graha tools over MCP (SSE/HTTP)",
	Long: `Serve exposes graha_bhedam, explore_raga, match_raga, raga_info,
raga_relations, and list_ragas as MCP tools on http://<host>:<port>/sse.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "address to listen on")
	serveCmd.Flags().Int("port", 8392, "port to listen on")
	serveCmd.Flags().Bool("watch", false, "reload the catalog when its file changes")
	_ = viper.BindPFlag("mcp.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("mcp.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	s, err := openSession(ctx, printer)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := mcpserver.NewServer(s.explorer, s.cfg.MCPAddr())
	if err := srv.Start(ctx); err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("graha MCP server on http://%s/sse (catalog: %s)", srv.Addr(), s.explorer.Catalog().Source))

	if watch, _ := cmd.Flags().GetBool("watch"); watch || s.cfg.Watch {
		stop, err := watchCatalog(ctx, s.explorer, s.cfg.Source(), func(c *explore.Catalog, err error) {
			if err != nil {
				printer.Error("reload: " + err.Error())
				return
			}
			printer.CatalogLoaded(c)
		})
		if err != nil {
			_ = srv.Stop(context.Background())
			return err
		}
		defer stop()
	}

	<-ctx.Done()

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	return srv.Stop(shutCtx)
}
