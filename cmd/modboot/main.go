package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/modboot/internal/cliconfig"
	"github.com/bft-labs/modboot/internal/manifest"
	"github.com/bft-labs/modboot/internal/runner"
	"github.com/bft-labs/modboot/pkg/checksum"
	"github.com/bft-labs/modboot/pkg/lifecycle"
	logpkg "github.com/bft-labs/modboot/pkg/log"
	"github.com/bft-labs/modboot/pkg/lockfile"
)

const longHelp = `
Boot an application as a set of named modules with declared dependencies.

modboot reads a TOML manifest, computes a deterministic dependency-consistent
startup order, starts each module in turn, and shuts everything down in
reverse order with per-module timeouts when the process receives a signal.

Highlights:
  - Kahn topological sort with registration-order tie breaking.
  - Per-module shutdown timeouts; a hung stop command never blocks exit.
  - Cycles and unknown dependencies are rejected before anything starts.
`

const exampleUsage = `  modboot plan --manifest boot.toml
  modboot run --manifest boot.toml --lock-file /var/run/modboot.lock`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "modboot",
		Short:         "Start and stop application modules in dependency order",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "",
		"path to config file (default $HOME/.modboot/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Manifest, "manifest", cfg.Manifest,
		"path to the TOML boot manifest")
	root.PersistentFlags().StringVar(&cfg.LockFile, "lock-file", cfg.LockFile,
		"single-instance lock file path")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"log level (debug, info, warn, error)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveConfig(cmd, &cfg, cfgPath)
	}

	root.AddCommand(newPlanCmd(&cfg))
	root.AddCommand(newRunCmd(&cfg))
	return root
}

// resolveConfig layers configuration sources: flags over environment over
// config file over defaults.
func resolveConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(cfg, fc, changed)
	}

	cliconfig.ApplyEnvConfig(cfg, changed)
	return cfg.Validate()
}

func newPlanCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Validate the boot manifest and print the startup order",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliconfig.Logger(cfg.LogLevel)
			adapter := logpkg.NewZerologAdapterWithLogger(log)

			m, err := manifest.Load(cfg.Manifest)
			if err != nil {
				return err
			}
			modules, err := runner.FromManifest(m, adapter)
			if err != nil {
				return err
			}

			order, err := lifecycle.Order(modules)
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}
			for i, name := range order {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func newRunCmd(cfg *cliconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the manifest's modules and hold them until a shutdown signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliconfig.Logger(cfg.LogLevel)
			adapter := logpkg.NewZerologAdapterWithLogger(log)

			m, err := manifest.Load(cfg.Manifest)
			if err != nil {
				return err
			}
			modules, err := runner.FromManifest(m, adapter)
			if err != nil {
				return err
			}

			lock := lockfile.New(cfg.LockFile)
			if err := lock.TryAcquire(); err != nil {
				return fmt.Errorf("another instance may be running: %w", err)
			}

			mgr := lifecycle.NewManager(lifecycle.WithLogger(adapter))
			checksum.Register(mgr)
			for _, mod := range modules {
				mgr.RegisterModule(mod)
			}
			watcher := manifest.NewWatcher(cfg.Manifest, adapter)
			mgr.RegisterModule(watcher.Module())
			mgr.RegisterFinalizer("lockfile", lock.Release, time.Second)

			guard, err := lifecycle.NewGuard(mgr)
			if err != nil {
				// Unwind whatever managed to start before the failure.
				_ = mgr.Finalize()
				return fmt.Errorf("initialize: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			log.Info().Strs("order", mgr.StartupOrder()).Msg("boot complete, waiting for shutdown signal")
			sig := <-sigCh
			log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")

			return guard.Close()
		},
	}
}
