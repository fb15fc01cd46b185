package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tileboard/internal/server"
	"github.com/matzehuels/tileboard/pkg/geom"
)

// serveCommand runs the HTTP control surface.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   imageFlags
		addr    string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a board over HTTP",
		Long: `Serve a single board over a JSON API, for scripted demos and automation.

The board's bounds start at the configured canvas size and can be changed
with PUT /api/bounds. With --offline, new tiles pick their images from the
built-in list served at /api/images instead of the configured provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			if offline && flags.url == "" {
				flags.url = "http://" + addr + "/api/images"
			}

			client, cc, err := c.newImageClient(ctx, flags, c.Logger)
			if err != nil {
				return err
			}
			defer cc.Close()

			srv := server.New(server.Options{
				Logger: c.Logger.WithPrefix("serve"),
				Images: client,
				Bounds: &geom.Bounds{Width: c.Config.Canvas.Width, Height: c.Config.Canvas.Height},
			})
			c.Logger.Info("serving board", "addr", addr, "images", client.URL())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "pick images from the built-in list")

	return cmd
}
