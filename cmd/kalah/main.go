package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/kalah/internal/cliconfig"
	"github.com/bft-labs/kalah/internal/server"
	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/internal/terminal"
	"github.com/bft-labs/kalah/pkg/log"
	"github.com/bft-labs/kalah/plugins/configwatcher"
)

const helpDescription = `
Kalah for two players at one table.

Each player owns six pits and a store. Sow the seeds of one of your pits
counter-clockwise; the last seed in your store earns another turn, the last
seed in an empty pit of yours captures the pit across. When a side runs dry
the remaining seeds are banked and the larger store wins.

Configure via $HOME/.kalah/config.toml, KALAH_* environment variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  kalah play --player-a Ada --player-b Bob
  kalah serve --listen 127.0.0.1:8080 --watch
  KALAH_STEP_DELAY=100ms kalah play
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app is the state shared by the subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	color   bool
	logger  zerolog.Logger
}

func main() {
	a := &app{
		cfg:    cliconfig.DefaultConfig(),
		logger: log.NewConsoleLogger(os.Stderr, zerolog.TraceLevel, false),
	}

	root := &cobra.Command{
		Use:          "kalah",
		Short:        "Play Kalah in a terminal or a browser",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.kalah/config.toml)")
	pf.StringVar(&a.cfg.PlayerA, "player-a", a.cfg.PlayerA, "name of the player moving first")
	pf.StringVar(&a.cfg.PlayerB, "player-b", a.cfg.PlayerB, "name of the second player")
	pf.StringVar(&a.cfg.ColorA, "color-a", a.cfg.ColorA, "color of player A (#rrggbb)")
	pf.StringVar(&a.cfg.ColorB, "color-b", a.cfg.ColorB, "color of player B (#rrggbb)")
	pf.DurationVar(&a.cfg.StepDelay, "step-delay", a.cfg.StepDelay, "pause between sowing steps")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	pf.BoolVar(&a.cfg.LogJSON, "log-json", a.cfg.LogJSON, "write logs as JSON")
	pf.BoolVar(&a.cfg.WatchConfig, "watch", a.cfg.WatchConfig, "reload the config file when it changes")

	play := &cobra.Command{
		Use:   "play",
		Short: "Hot-seat game in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd)
		},
	}
	play.Flags().BoolVar(&a.color, "color", isatty.IsTerminal(os.Stdout.Fd()), "color player names")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	serve.Flags().StringVar(&a.cfg.Listen, "listen", a.cfg.Listen, "address to listen on")

	root.AddCommand(play, serve)

	if err := root.Execute(); err != nil {
		a.logger.Error().Err(err).Msg("kalah")
		os.Exit(1)
	}
}

// setup layers config file, environment and flags, configures logging and
// builds the session. fallback is the log level used when none is configured.
func (a *app) setup(cmd *cobra.Command, fallback zerolog.Level) (*session.Session, log.Logger, error) {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	base := a.cfg
	if err := cliconfig.Load(&a.cfg, cfgFile, changed); err != nil {
		return nil, nil, err
	}

	level, _ := a.cfg.LevelOr(fallback)
	zerolog.SetGlobalLevel(level)
	a.logger = log.NewConsoleLogger(os.Stderr, zerolog.TraceLevel, a.cfg.LogJSON)
	logger := log.NewZerologAdapterWithLogger(a.logger)

	logger.Info("configuration",
		log.String("player_a", a.cfg.PlayerA),
		log.String("player_b", a.cfg.PlayerB),
		log.Duration("step_delay", a.cfg.StepDelay),
		log.String("config", cfgFile),
	)

	opts := []session.Option{session.WithLogger(logger)}
	switch {
	case a.cfg.WatchConfig && !cliconfig.FileExists(cfgFile):
		logger.Warn("config watch requested but no config file found", log.String("config", cfgFile))
	case a.cfg.WatchConfig:
		opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{
			Path:    cfgFile,
			Base:    base,
			Changed: changed,
			OnReload: func(cfg cliconfig.Config, err error) {
				if err != nil {
					return
				}
				if lvl, err := cfg.LevelOr(fallback); err == nil {
					zerolog.SetGlobalLevel(lvl)
				}
			},
		}))
	}

	sess, err := session.New(a.cfg.Settings(), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return sess, logger, nil
}

func (a *app) runPlay(cmd *cobra.Command) error {
	// Logs share the terminal with the board, so keep them quiet by default.
	sess, logger, err := a.setup(cmd, zerolog.WarnLevel)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	d := terminal.NewDriver(sess, os.Stdin, os.Stdout,
		terminal.WithColor(a.color),
		terminal.WithLogger(logger),
	)
	return d.Run(ctx)
}

func (a *app) runServe(cmd *cobra.Command) error {
	sess, logger, err := a.setup(cmd, zerolog.InfoLevel)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	ln, err := net.Listen("tcp", a.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	srv := server.New(sess, server.WithLogger(logger))
	return srv.Run(ctx, ln)
}
