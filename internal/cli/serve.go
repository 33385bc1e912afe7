package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var embed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word cloud over HTTP",
		Long: `Serve exposes the stored words over a JSON API and renders the animated
cloud on request at /api/cloud.svg. Commands sent to the API are persisted
with the configured storage backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			loop := render.NewLoop(nil,
				render.WithTheme(cfg.Theme()),
				render.WithGlowScale(cfg.Render.GlowScale),
				render.WithLogger(logger))
			measurer := fonts.NewMeasurer()
			defer measurer.Close()

			cl, store, err := c.openCloud(ctx, cfg, loop, measurer)
			if err != nil {
				return err
			}
			defer store.Close()
			defer cl.Close()

			srv := server.New(cl, loop, server.Options{EmbedFont: embed, Logger: logger})
			printInfo("Serving %s on %s", StyleValue.Render(appName), StyleHighlight.Render(addr))
			printDetail("Storage: %s", cfg.Storage.Backend)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return loop.Run(gctx, cfg.Render.FPS) })
			g.Go(func() error { return srv.ListenAndServe(gctx, addr) })
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&embed, "embed-font", false, "embed the font in SVG frames")
	return cmd
}
