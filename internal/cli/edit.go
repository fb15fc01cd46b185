package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tileboard/pkg/buildinfo"
)

// editCommand runs the interactive tile editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		flags   imageFlags
		logFile string
		cellW   float64
		cellH   float64
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive tile editor",
		Long: `Open the tile editor in the terminal.

Click "+ Add" (or press a) to add a tile with a random color and image.
Click a tile to select it, then drag its body to move it or drag an edge or
corner to resize it. Tiles always stay inside the canvas. Click × (or press
x) to delete a tile, click the background (or press esc) to deselect, and
press q to quit.

The terminal belongs to the editor while it runs, so logs go to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if logFile == "" {
				p, err := defaultLogFile()
				if err != nil {
					return fmt.Errorf("resolve log file: %w", err)
				}
				logFile = p
			}
			f, err := openLogFile(logFile)
			if err != nil {
				return err
			}
			defer f.Close()

			logger := newLogger(f, c.Logger.GetLevel())
			if logger.GetLevel() <= log.DebugLevel {
				registerLogHooks(logger)
			}

			client, cc, err := c.newImageClient(ctx, flags, logger)
			if err != nil {
				return err
			}
			defer cc.Close()

			if !cmd.Flags().Changed("cell-width") {
				cellW = c.Config.Canvas.CellWidth
			}
			if !cmd.Flags().Changed("cell-height") {
				cellH = c.Config.Canvas.CellHeight
			}

			model := NewEditorModel(ctx, EditorOptions{
				Images:     client,
				Logger:     logger,
				CellWidth:  cellW,
				CellHeight: cellH,
				HandleSize: c.Config.Canvas.HandleSize,
			})
			defer model.Board().Teardown()

			logger.Info("editor started", "version", buildinfo.Version, "commit", buildinfo.ShortCommit(), "images", client.URL())
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return fmt.Errorf("run editor: %w", err)
			}
			logger.Info("editor closed", "tiles", model.Board().Len())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file (default $XDG_STATE_HOME/tileboard/edit.log)")
	cmd.Flags().Float64Var(&cellW, "cell-width", 0, "canvas units per terminal column (overrides config)")
	cmd.Flags().Float64Var(&cellH, "cell-height", 0, "canvas units per terminal row (overrides config)")

	return cmd
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
