package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tileboard/pkg/errors"
	"github.com/matzehuels/tileboard/pkg/images"
)

const defaultImagesLimit = 10

// imagesCommand lists the entries of the image-list provider.
func (c *CLI) imagesCommand() *cobra.Command {
	var (
		flags imageFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List the images new tiles are picked from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			client, cc, err := c.newImageClient(ctx, flags, logger)
			if err != nil {
				return err
			}
			defer cc.Close()

			prog := newProgress(logger)
			spin := newSpinner(ctx, os.Stderr, "Fetching "+client.URL())
			spin.Start()
			photos, err := client.List(ctx)
			if err != nil {
				spin.StopWithError(errors.UserMessage(err))
				return fmt.Errorf("list images: %w", err)
			}
			spin.Stop()
			prog.done(fmt.Sprintf("Fetched %d images", len(photos)))

			renderImagesTable(cmd.OutOrStdout(), photos, limit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultImagesLimit, "number of entries to show (0 for all)")

	return cmd
}

func renderImagesTable(w io.Writer, photos []images.Photo, limit int) {
	shown := photos
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	rows := make([][]string, len(shown))
	for i, p := range shown {
		id := "—"
		if p.ID != 0 {
			id = strconv.Itoa(p.ID)
		}
		rows[i] = []string{id, p.Title, p.URL}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleNumber
			case col == 2:
				return StyleDim
			}
			return StyleValue
		})

	fmt.Fprintln(w, t.Render())
	if len(shown) < len(photos) {
		fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  [%d/%d]", len(shown), len(photos))))
	}
}
