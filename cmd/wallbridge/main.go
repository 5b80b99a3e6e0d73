package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	logAdapter "github.com/bft-labs/wallbridge/internal/adapters/log"
	"github.com/bft-labs/wallbridge/internal/adapters/prefs"
	"github.com/bft-labs/wallbridge/internal/adapters/renderer"
	"github.com/bft-labs/wallbridge/internal/adapters/surface"
	"github.com/bft-labs/wallbridge/internal/app"
	"github.com/bft-labs/wallbridge/internal/cliconfig"
	"github.com/bft-labs/wallbridge/internal/domain"
	"github.com/bft-labs/wallbridge/internal/host"
)

const helpDescription = `
Drive a live wallpaper renderer from a scripted sequence of host events.

The script replays what a wallpaper host delivers: connections, surface
creation and resizes, visibility changes and preference edits. The bridge
turns them into renderer calls; frames are kept in memory or written as
PNG snapshots.

Preferences live in a TOML file; with --watch, edits are picked up while
the script runs.
`

var exampleUsage = strings.TrimSpace(`
  wallbridge --script examples/rotate.toml --snapshot-dir /tmp/frames
  wallbridge --config $HOME/.wallbridge/config.toml --watch --hold
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// anomalyCounter tallies bridge anomalies for the exit summary.
type anomalyCounter struct {
	mu     sync.Mutex
	counts map[domain.Anomaly]int
}

func (a *anomalyCounter) OnAnomaly(kind domain.Anomaly, detail string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counts == nil {
		a.counts = make(map[domain.Anomaly]int)
	}
	a.counts[kind]++
}

func (a *anomalyCounter) log(log zerolog.Logger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for kind, n := range a.counts {
		log.Warn().Stringer("anomaly", kind).Int("count", n).Msg("host anomalies")
	}
}

// stateLogger reports render goroutine state changes.
type stateLogger struct {
	log zerolog.Logger
}

func (s stateLogger) OnStateChange(previous, current renderer.State, reason string) {
	ev := s.log.Info()
	if current == renderer.StateCrashed {
		ev = s.log.Error()
	}
	ev.Stringer("from", previous).Stringer("to", current).Str("reason", reason).Msg("renderer state")
}

func run(ctx context.Context, cfg cliconfig.Config, log zerolog.Logger) error {
	script, err := host.LoadScript(cfg.ScriptPath)
	if err != nil {
		return err
	}

	source := prefs.NewFileSource(cfg.PrefsPath)
	if !cliconfig.FileExists(cfg.PrefsPath) {
		if err := os.MkdirAll(filepath.Dir(cfg.PrefsPath), 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
		if err := source.Save(domain.DefaultPreferences()); err != nil {
			return err
		}
		log.Info().Str("path", cfg.PrefsPath).Msg("wrote default preferences")
	}

	base := logAdapter.NewZerologAdapterWithLogger(log)
	r := renderer.New(renderer.Config{
		Preferences:     source,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, base.With("renderer"), stateLogger{log: log.With().Str("component", "renderer").Logger()})

	anomalies := &anomalyCounter{}
	bridge := app.NewBridge(r, base.With("bridge"), anomalies)

	surfaces := surface.Factory{Dir: cfg.SnapshotDir, Every: cfg.SnapshotEvery}
	if cfg.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	player := host.NewPlayer(bridge, surfaces, base.With("host"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := player.Play(gctx, script); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		log.Info().Int("events", len(script.Events)).Msg("script finished")
		if cfg.Hold {
			<-gctx.Done()
			return nil
		}
		cancel()
		return nil
	})

	if cfg.Watch {
		w := prefs.NewWatcher(cfg.PrefsPath, prefs.DefaultDebounceDelay, bridge, base.With("prefs"))
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	err = g.Wait()

	// The host tears the engine down if the script left it connected.
	if bridge.Snapshot().Connections > 0 {
		bridge.OnEngineDestroyed()
	}

	snap := bridge.Snapshot()
	log.Info().
		Int("connections", snap.Connections).
		Uint64("frames", r.FramesPresented()).
		Uint64("present_errors", r.PresentErrors()).
		Msg("engine destroyed")
	anomalies.log(log)

	if err != nil {
		return err
	}
	if r.State() == renderer.StateCrashed {
		return errors.New("renderer crashed")
	}
	return nil
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "wallbridge",
		Short:   "Drive a live wallpaper renderer from scripted host lifecycle events",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zerolog.SetGlobalLevel(cfg.Level())
			if cfg.Level() <= zerolog.DebugLevel {
				gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, log)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.wallbridge/config.toml)")
	root.Flags().StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "host event script (TOML)")
	root.Flags().StringVar(&cfg.PrefsPath, "prefs", cfg.PrefsPath, "preferences file (default: $HOME/.wallbridge/preferences.toml)")
	root.Flags().StringVar(&cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "write PNG snapshots of each surface here (default: keep frames in memory)")
	root.Flags().IntVar(&cfg.SnapshotEvery, "snapshot-every", cfg.SnapshotEvery, "frames between PNG snapshots")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "how long to wait for the render goroutine on disconnect")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload preferences when the file changes")
	root.Flags().BoolVar(&cfg.Hold, "hold", cfg.Hold, "keep running after the script until interrupted")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("wallbridge")
		os.Exit(1)
	}
}
