// Package board implements the tile container of the editor.
//
// A [Board] owns the list of tiles, the measured bounds of the editing
// surface and the single selection slot. Every mutation goes through the
// board, and every geometry update passes through [geom.Clamp] against the
// bounds current at the time of the update.
//
// # Lifecycle
//
// [Board.Mount] subscribes to a [SizeObserver] (through a [BoundsTracker]) and
// to a [ClickListener] that reports clicks on the background. [Board.Teardown]
// releases both. After teardown, [Board.Insert] refuses tiles, so an image
// fetch that completes late cannot modify a board nobody is looking at.
//
// # Concurrency
//
// A Board is not safe for concurrent use. It is written by one event loop;
// [Board.NewTile] is the only method meant to run elsewhere, since it reads
// no board state:
//
//	cmd := func() tea.Msg {
//	    t, err := b.NewTile(ctx)
//	    return tileFetchedMsg{tile: t, err: err}
//	}
//
// # Gestures
//
// Selecting a tile attaches the board's [gesture.Source] with a handler that
// turns drag and resize frames into [Board.UpdateTile] calls. Deselecting or
// deleting the tile detaches it.
package board
