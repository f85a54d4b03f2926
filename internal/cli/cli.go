package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/procview/internal/config"
	"github.com/matzehuels/procview/internal/workspace"
	"github.com/matzehuels/procview/pkg/buildinfo"
	"github.com/matzehuels/procview/pkg/cache"
	"github.com/matzehuels/procview/pkg/connector"
	"github.com/matzehuels/procview/pkg/definition"
	"github.com/matzehuels/procview/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "procview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "procview collapses node groups of process graphs and edits them with undo",
		Long:         `procview stores process documents, collapses groups of nodes into single nodes for display, picks connector kinds for new edges and keeps an undo history of every edit.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./procview.toml or $XDG_CONFIG_HOME/procview/procview.toml)")

	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.displayCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.edgeCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.connectorsCommand())
	root.AddCommand(c.undoCommand())
	root.AddCommand(c.redoCommand())
	root.AddCommand(c.jumpCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())
	c.registerIDCompletion(root)

	return root
}

// =============================================================================
// Service Factory
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = cfg
	return cfg, nil
}

// catalogFlags select the connector catalog for a command.
type catalogFlags struct {
	file           string
	processingType string
	refresh        bool
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "catalog", "", "connector catalog JSON file")
	cmd.Flags().StringVar(&f.processingType, "processing-type", "", "processing type to fetch from the definition service")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the catalog cache")
}

// newService opens the configured store and returns a workspace service.
// The returned close function releases the store.
func (c *CLI) newService(ctx context.Context, cf *catalogFlags) (*workspace.Service, func(), error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	catalogs, err := c.catalogSource(ctx, cfg, cf)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(ctx, cfg.StoreConfig())
	if err != nil {
		return nil, nil, err
	}
	svc := workspace.NewService(s, workspace.Options{
		Editor:   cfg.EditorOptions(),
		Catalogs: catalogs,
		Logger:   c.Logger,
	})
	return svc, func() { s.Close() }, nil
}

// catalogSource resolves the catalog: a file flag wins over a processing
// type flag, which wins over the config file.
func (c *CLI) catalogSource(ctx context.Context, cfg *config.Config, cf *catalogFlags) (workspace.CatalogSource, error) {
	var f catalogFlags
	if cf != nil {
		f = *cf
	}
	file, ptype := f.file, f.processingType
	if file == "" && ptype == "" {
		file, ptype = cfg.Definitions.CatalogFile, cfg.Definitions.ProcessingType
	}

	if file != "" {
		catalog, err := definition.LoadCatalogFile(file)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded catalog file", "path", file, "entries", len(catalog))
		return workspace.StaticCatalog(catalog), nil
	}
	if ptype == "" || cfg.Definitions.BaseURL == "" {
		return workspace.StaticCatalog(nil), nil
	}

	ch, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client, err := definition.NewClient(definition.Options{
		BaseURL: cfg.Definitions.BaseURL,
		Cache:   ch,
		TTL:     cfg.Definitions.CacheTTL.Duration,
		Headers: cfg.Definitions.Headers,
		Timeout: cfg.Definitions.Timeout.Duration,
	})
	if err != nil {
		return nil, err
	}
	if f.refresh {
		return refreshingCatalog{client: client, processingType: ptype}, nil
	}
	return workspace.RemoteCatalog{Client: client, ProcessingType: ptype}, nil
}

type refreshingCatalog struct {
	client         *definition.Client
	processingType string
}

func (r refreshingCatalog) Catalog(ctx context.Context) (connector.Catalog, error) {
	return r.client.Catalog(ctx, r.processingType, true)
}

// newCache returns the configured catalog cache. Cache failures degrade to
// no caching.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Cache.RedisAddr, "error", err)
			client.Close()
			return cache.NewNullCache(), nil
		}
		return cache.NewRedisCache(client, appName+":cache:"), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout
