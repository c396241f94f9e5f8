package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/buildinfo"
	"github.com/matzehuels/jappaper/pkg/cache"
	"github.com/matzehuels/jappaper/pkg/observability"
	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/store"
	"github.com/matzehuels/jappaper/pkg/template"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jappaper"

	// defaultMongoDB is the database used when --mongo-uri is set without --mongo-db.
	defaultMongoDB = "jappaper"
)

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
		Use:   appName,
		Short: "jappaper lays out and renders printable writing-practice paper",
		Long: `jappaper builds printable practice paper for handwriting: genkoyoshi-style
character grids, dotted, lined and ruled pages, with optional trace characters
written into the cells.

Templates are plain TOML, YAML or JSON files. Create one with 'new', adjust it
by hand or with 'import', 'generate', 'cell' and 'edit', then 'render' it.`,
		Version:       buildinfo.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetAPIHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.newCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.cellCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Store Factory
// =============================================================================

// storeOpts selects the template store backend.
type storeOpts struct {
	dir      string
	mongoURI string
	mongoDB  string
}

func (o *storeOpts) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.dir, "store-dir", "", "template directory (default: XDG data dir)")
	cmd.PersistentFlags().StringVar(&o.mongoURI, "mongo-uri", os.Getenv("JAPPAPER_MONGO_URI"), "store templates in MongoDB instead of files")
	cmd.PersistentFlags().StringVar(&o.mongoDB, "mongo-db", defaultMongoDB, "MongoDB database name")
}

// open connects to MongoDB when a URI is set and falls back to the file store.
func (o storeOpts) open(ctx context.Context) (store.Store, error) {
	if o.mongoURI != "" {
		return store.NewMongoStore(ctx, o.mongoURI, o.mongoDB)
	}
	dir := o.dir
	if dir == "" {
		var err error
		if dir, err = store.DefaultDir(appName); err != nil {
			return nil, err
		}
	}
	return store.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jappaper/).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// =============================================================================
// Template Helpers
// =============================================================================

// saveTarget returns output when set and the input path otherwise, so
// editing commands rewrite their template in place by default.
func saveTarget(input, output string) string {
	if output != "" {
		return output
	}
	return input
}

// writeTemplate saves doc and reports the path.
func writeTemplate(path string, doc *template.Document) error {
	if err := template.Save(path, doc); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
