package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/stahnma/pds-didweb/internal/cache"
	"github.com/stahnma/pds-didweb/internal/config"
	"github.com/stahnma/pds-didweb/internal/history"
	"github.com/stahnma/pds-didweb/internal/pds"
	"go.uber.org/zap"
)

// App holds shared application state.
type App struct {
	Config   config.Config
	Cache    *cache.Cache
	Client   pds.Client
	History  *history.Recorder
	Logger   *zap.Logger
	GitSHA   string
	GitDirty string

	now func() time.Time
}

// NewApp creates a new App from the given configuration.
func NewApp(cfg config.Config, logger *zap.Logger, gitSHA, gitDirty string) (*App, error) {
	c := cache.New()
	if cfg.CacheFile != "" {
		loaded, err := cache.LoadFromFile(cfg.CacheFile)
		var corrupt *cache.CorruptError
		switch {
		case errors.As(err, &corrupt):
			logger.Warn("Cache decode error (starting fresh)", zap.Error(err))
		case err != nil:
			return nil, fmt.Errorf("loading cache: %w", err)
		}
		c = loaded
	}

	var rec *history.Recorder
	if cfg.HistoryDB != "" {
		var err error
		rec, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		Config:   cfg,
		Cache:    c,
		History:  rec,
		Logger:   logger,
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}, nil
}

// ensureClient creates the PDS client if it doesn't exist.
func (a *App) ensureClient() {
	if a.Client == nil {
		a.Client = pds.NewClient(a.Config.HTTPTimeout)
	}
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	return a.Logger
}

func (a *App) today() string {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	return now().Format("2006-Jan-02")
}

// SaveCache saves the cache to disk if caching is enabled.
func (a *App) SaveCache() error {
	if !a.Config.NoCache && a.Config.CacheFile != "" {
		return a.Cache.SaveToFile(a.Config.CacheFile)
	}
	return nil
}

// Close releases the history database, if open.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pds-didweb [pds-host]",
		Short: "List the did:web repositories hosted on a PDS.",
		Long: `pds-didweb asks a Personal Data Server for the repositories it hosts
(com.atproto.sync.listRepos), prints the ones whose DID uses did:web and
saves them as JSON. The host defaults to ` + config.DefaultHost + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVar(&a.Config.NoCache, "no-cache", a.Config.NoCache, "Disable caching")

	rootCmd.AddCommand(a.newVersionCommand())
	rootCmd.AddCommand(a.newClearCacheCommand())
	rootCmd.AddCommand(a.newHistoryCommand())

	return rootCmd
}

// PrintError writes err, and its cause when it carries one, the way the
// command line reports failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	var causer interface{ Cause() error }
	if errors.As(err, &causer) && causer.Cause() != nil {
		fmt.Fprintln(w, "Cause:", causer.Cause())
	}
}
