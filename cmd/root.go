// Package cmd provides the root command and CLI setup for casegen.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/casegen/internal/adapter"
	"github.com/mouse-blink/casegen/internal/config"
	"github.com/mouse-blink/casegen/internal/controller"
	"github.com/mouse-blink/casegen/internal/domain"
	"github.com/mouse-blink/casegen/internal/domain/extract"
	"github.com/mouse-blink/casegen/internal/logging"
	m "github.com/mouse-blink/casegen/internal/model"
)

// workflow is built from the loaded configuration unless a test has already
// set it.
var workflow domain.Workflow

// settings is the configuration resolved for the running command.
var settings *config.Config

var configFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casegen",
		Short: "Generate a Java API-evolution dataset from diff test classes",
		Long: `Casegen scans JUnit test classes for API-evolution test cases, each made of
an old (v1) and a new (v2) library snippet plus an optional client snippet
given in a @Client annotation, and writes them as a dataset of compilable
Java source trees:

  <output>/client/src/<Class>_<method>/Main.java
  <output>/v1/src/<Class>_<method>/<Type>.java
  <output>/v2/src/<Class>_<method>/<Type>.java

Running casegen without a subcommand is the same as "casegen generate".`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runGenerate,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "config file (default is ./.casegen.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.Int("lookback", 0, "characters before a test annotation searched for its @Client companion")
	flags.String("ui", "", "output mode: auto, plain or tui")

	addGenerateFlags(cmd)

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setup resolves the configuration and, when needed, wires the workflow.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrideString(flags, "log-level", &cfg.Log.Level)
	overrideString(flags, "log-format", &cfg.Log.Format)
	overrideInt(flags, "lookback", &cfg.Lookback)
	overrideString(flags, "ui", &cfg.UI)
	overrideString(flags, "tests", &cfg.Tests)
	overrideString(flags, "output", &cfg.Output)
	overrideBool(flags, "strict", &cfg.Verify.Strict)
	overrideInt(flags, "workers", &cfg.Verify.Workers)
	overrideDuration(flags, "debounce", &cfg.Watch.Debounce)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	settings = cfg

	if workflow != nil {
		return nil
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	wf, err := newWorkflow(cmd, cfg, log)
	if err != nil {
		return err
	}

	workflow = wf

	return nil
}

func newWorkflow(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) (domain.Workflow, error) {
	out, err := controller.ParseOutput(cfg.UI)
	if err != nil {
		return nil, err
	}

	extractor, err := extract.New(cfg.Markers.ExtractMarkers(), extract.WithLookback(cfg.Lookback))
	if err != nil {
		return nil, err
	}

	fsAdapter := adapter.NewLocalSourceFSAdapter()

	return domain.NewWorkflow(domain.Adapters{
		FS:        fsAdapter,
		Writer:    adapter.NewLocalDatasetWriter(fsAdapter, log),
		Manifests: adapter.NewLocalManifestStore(fsAdapter),
		Checker:   adapter.NewTreeSitterJavaChecker(fsAdapter),
		Watcher:   adapter.NewFSNotifyDirWatcher(log),
	}, extractor, controller.NewUI(cmd, out), log), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func listArgs() domain.ListArgs {
	return domain.ListArgs{
		Tests:     m.Path(settings.Tests),
		Extension: settings.Extension,
	}
}

func verifyArgs() domain.VerifyArgs {
	return domain.VerifyArgs{
		Output:  m.Path(settings.Output),
		Workers: settings.Verify.Workers,
		Strict:  settings.Verify.Strict,
	}
}
