package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/config"
	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/telemetry"
	"github.com/papapumpkin/graha/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "graha",
	Short: "Graha bhedam explorer for Carnatic ragas",
	Long: `Graha shifts the tonic of a raga scale to each of its notes and names the
scales that result, using a catalog of melakarta and janya ragas.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.As(err, new(*reportedError)) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .graha.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("catalog", "", "TOML catalog file (default: builtin catalog)")
	pf.String("catalog-driver", catalog.DriverSQLite, "SQL driver for --catalog-dsn (sqlite or mysql)")
	pf.String("catalog-dsn", "", "SQL catalog DSN; takes precedence over --catalog")
	pf.String("aliases", "", "TOML file with an extra [aliases] table")
	pf.String("events", "", "append JSONL events to this file")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("catalog_path", pf.Lookup("catalog"))
	_ = viper.BindPFlag("catalog_driver", pf.Lookup("catalog-driver"))
	_ = viper.BindPFlag("catalog_dsn", pf.Lookup("catalog-dsn"))
	_ = viper.BindPFlag("aliases_path", pf.Lookup("aliases"))
	_ = viper.BindPFlag("events_path", pf.Lookup("events"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".graha")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GRAHA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// reportedError marks an error the printer has already shown, so Execute
// only sets the exit status.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error { return &reportedError{err: err} }

// newPrinter writes through the command's streams so tests can capture them.
func newPrinter(cmd *cobra.Command) *ui.Printer {
	return &ui.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

// session is the explorer a command works against plus what it must close.
type session struct {
	cfg      config.Config
	explorer *explore.Explorer
	events   *telemetry.Emitter
}

func (s *session) Close() {
	_ = s.events.Close()
}

// openSession loads configuration and the configured catalog. In verbose
// mode it reports the catalog and its issues.
func openSession(ctx context.Context, printer *ui.Printer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	src := cfg.Source()
	f, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	var events *telemetry.Emitter
	if cfg.EventsPath != "" {
		events, err = telemetry.NewEmitter(cfg.EventsPath)
		if err != nil {
			return nil, err
		}
	}

	c := explore.NewCatalog(src.Describe(), f)
	if cfg.Verbose {
		printer.CatalogLoaded(c)
		if len(c.Issues) > 0 {
			printer.CatalogIssues(c.Issues)
		}
	}
	return &session{
		cfg:      cfg,
		explorer: explore.New(c, events),
		events:   events,
	}, nil
}

// setupSignalContext returns a context canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
