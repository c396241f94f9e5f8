package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/cache"
	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
		stores   storeOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template API over HTTP",
		Long: `Serve the template API over HTTP.

Templates are kept in the file store unless --mongo-uri is set. Rendered
artifacts are cached on disk, or in Redis when --redis-url is set so several
instances can share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache, stores)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", os.Getenv("JAPPAPER_REDIS_URL"), "cache rendered artifacts in Redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	stores.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool, stores storeOpts) error {
	runner, err := c.newServerRunner(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := stores.open(ctx)
	if err != nil {
		return fmt.Errorf("open template store: %w", err)
	}
	defer st.Close()

	printInfo("Serving on %s", StyleLink.Render(displayAddr(addr)))
	if err := server.New(runner, st, c.Logger).ListenAndServe(ctx, addr); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// newServerRunner picks the artifact cache for the API: Redis when a URL is
// given, the local file cache otherwise.
func (c *CLI) newServerRunner(ctx context.Context, redisURL string, noCache bool) (*pipeline.Runner, error) {
	if noCache || redisURL == "" {
		return c.newRunner(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	// Cache failures count as misses, so retry only briefly.
	rc.WithBackoff(cache.Backoff{Attempts: 2, Delay: 100 * time.Millisecond})
	c.Logger.Info("using redis cache")
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, appName+":"), c.Logger), nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
