package main

import (
	"context"
	"fmt"

	"github.com/gobeaver/pathkit"
	"github.com/gobeaver/pathkit/driver/favorites"
	"github.com/gobeaver/pathkit/driver/local"
	"github.com/gobeaver/pathkit/driver/zip"
	"github.com/gobeaver/pathkit/internal/logging"
	"github.com/gobeaver/pathkit/prefs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// all persistent flags go here; empty values keep the configured setting
var persistentFlagPrefsFile string
var persistentFlagLogLevel string
var persistentFlagLogFormat string

// app is the state shared by all commands, built before each run.
type app struct {
	conf     *pathkit.Config
	log      *zap.Logger
	prefs    *prefs.File
	registry *pathkit.Registry
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "pathkit",
	Short: "pathkit browses files, zip archives and favorites through one path syntax",
	Long: `pathkit resolves paths like /home/user, zip:///tmp/a.zip/docs/ or fav://
and lets you list, inspect, copy and delete what they point to.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			_ = current.log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&persistentFlagPrefsFile, "prefs", "", "preference file holding favorites")
	rootCmd.PersistentFlags().StringVar(&persistentFlagLogLevel, "log-level", "", "log level [debug,info,warn,error]")
	rootCmd.PersistentFlags().StringVar(&persistentFlagLogFormat, "log-format", "", "log format [console,json]")

	initLs()
	initStat()
	initFileOps()
	initFav()
	initOpen()
	initWatch()

	rootCmd.AddCommand(lsCmd, statCmd, mkdirCmd, rmCmd, cpCmd, catCmd, favCmd, openCmd, watchCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	conf, err := pathkit.GetConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	// overwrite config with command line data
	if persistentFlagPrefsFile != "" {
		conf.PrefsFile = persistentFlagPrefsFile
	}
	if persistentFlagLogLevel != "" {
		conf.LogLevel = persistentFlagLogLevel
	}
	if persistentFlagLogFormat != "" {
		conf.LogFormat = persistentFlagLogFormat
	}

	log, err := logging.New(logging.Config{Level: conf.LogLevel, Format: conf.LogFormat})
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}

	store, err := prefs.OpenFile(conf.PrefsFile)
	if err != nil {
		return fmt.Errorf("cannot open preferences: %w", err)
	}

	registry := pathkit.Default()
	registry.SetEnv(&pathkit.Env{
		Preferences:    store,
		Logger:         log,
		FavoritesLabel: conf.FavoritesLabel,
	})
	local.Register(registry)
	favorites.Register(registry)
	zip.Register(registry, conf.Extensions()...)

	log.Debug("pathkit ready",
		zap.String("prefs", store.Path()),
		zap.Strings("schemes", registry.Schemes()),
		zap.Strings("extensions", registry.Extensions()))

	current = &app{conf: conf, log: log, prefs: store, registry: registry}
	return nil
}

// resolve turns a command line argument into a node.
func (a *app) resolve(arg string) (pathkit.Path, error) {
	p, err := a.registry.Resolve(arg)
	if err != nil {
		return nil, err
	}
	a.log.Debug("resolved", zap.String("arg", arg), zap.String("path", p.Path()))
	return p, nil
}

// require fails unless p supports f.
func require(p pathkit.Path, f pathkit.Feature) error {
	if !p.Supports(f) {
		return pathkit.NewPathError(f.String(), p.Path(), pathkit.ErrNotSupported)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
