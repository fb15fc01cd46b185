package board

import (
	"context"
	"io"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tileboard/pkg/geom"
	"github.com/matzehuels/tileboard/pkg/gesture"
	"github.com/matzehuels/tileboard/pkg/observability"
)

// ImageSource picks the background image of a new tile.
type ImageSource interface {
	RandomImage(ctx context.Context) (string, error)
}

// Options configures a [Board]. Every field is optional.
type Options struct {
	// Logger receives fetch failures and lifecycle events. Defaults to a
	// logger that discards everything.
	Logger *log.Logger

	// Images supplies tile images. AddTile fails without it.
	Images ImageSource

	// Gestures is attached to the selected tile.
	Gestures gesture.Source

	// Rand picks tile colors. Defaults to the global generator.
	Rand *rand.Rand

	// NewID generates tile ids. Defaults to random UUIDs.
	NewID func() string
}

// Board is the tile container. See the package documentation.
type Board struct {
	logger   *log.Logger
	images   ImageSource
	gestures gesture.Source
	newID    func() string

	rndMu sync.Mutex
	rnd   *rand.Rand

	tiles    []Tile
	bounds   *geom.Bounds
	selected string
	state    TileState
	detach   func()

	tracker     BoundsTracker
	removeClick func()
	mounted     bool
	closed      bool
}

// New creates an empty board with unknown bounds.
func New(opts Options) *Board {
	b := &Board{
		logger:   opts.Logger,
		images:   opts.Images,
		gestures: opts.Gestures,
		newID:    opts.NewID,
		rnd:      opts.Rand,
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	return b
}

// =============================================================================
// Lifecycle
// =============================================================================

// Mount starts observing the surface size and background clicks. Either
// argument may be nil. Mount does nothing on a mounted or torn-down board.
func (b *Board) Mount(sizes SizeObserver, clicks ClickListener) {
	if b.mounted || b.closed {
		return
	}
	b.mounted = true
	b.tracker.Start(sizes, b.setBounds)
	if clicks != nil {
		b.removeClick = clicks.OnClick(b.DeselectAll)
	}
	b.logger.Debug("board mounted")
}

// Teardown releases the size observation, the click listener and the gesture
// attachment. The board keeps its tiles but refuses new ones.
func (b *Board) Teardown() {
	if b.closed {
		return
	}
	b.closed = true
	b.tracker.Stop()
	if b.removeClick != nil {
		b.removeClick()
		b.removeClick = nil
	}
	b.detachGesture()
	b.logger.Debug("board torn down", "tiles", len(b.tiles))
}

// Closed reports whether Teardown has run.
func (b *Board) Closed() bool { return b.closed }

func (b *Board) setBounds(bounds geom.Bounds) {
	b.bounds = &bounds
	observability.Board().OnBoundsChanged(bounds.Width, bounds.Height)
}

// SetBounds replaces the container bounds directly, bypassing the tracker.
func (b *Board) SetBounds(bounds geom.Bounds) { b.setBounds(bounds) }

// Bounds returns the current bounds and whether they have been measured.
func (b *Board) Bounds() (geom.Bounds, bool) {
	if b.bounds == nil {
		return geom.Bounds{}, false
	}
	return *b.bounds, true
}

// =============================================================================
// Tiles
// =============================================================================

// NewTile fetches an image and builds a tile with default geometry, a random
// palette color and a fresh id. It does not touch the tile list.
func (b *Board) NewTile(ctx context.Context) (Tile, error) {
	if b.images == nil {
		return Tile{}, errNoImages
	}
	url, err := b.images.RandomImage(ctx)
	if err != nil {
		return Tile{}, err
	}
	return Tile{
		ID: b.newID(),
		Geometry: geom.Geometry{
			Width:  DefaultTileWidth,
			Height: DefaultTileHeight,
		},
		Color:     Palette[b.intN(len(Palette))],
		Image:     url,
		UpdateEnd: true,
	}, nil
}

func (b *Board) intN(n int) int {
	if b.rnd == nil {
		return rand.IntN(n)
	}
	b.rndMu.Lock()
	defer b.rndMu.Unlock()
	return b.rnd.IntN(n)
}

// Insert appends t. It reports false, leaving the board unchanged, once the
// board has been torn down.
func (b *Board) Insert(t Tile) bool {
	if b.closed {
		b.logger.Debug("dropping tile for torn-down board", "id", t.ID)
		return false
	}
	t.Selected = false
	b.tiles = append(b.tiles, t)
	observability.Board().OnTileAdded(t.ID)
	b.logger.Debug("tile added", "id", t.ID, "color", t.Color, "image", t.Image)
	return true
}

// AddTile runs NewTile and Insert back to back. A failed fetch is logged and
// leaves the board unchanged.
func (b *Board) AddTile(ctx context.Context) (Tile, bool) {
	t, err := b.NewTile(ctx)
	if err != nil {
		b.logger.Error("fetch image", "err", err)
		return Tile{}, false
	}
	if !b.Insert(t) {
		return Tile{}, false
	}
	return b.view(t), true
}

// UpdateTile stores the clamped proposed geometry on the tile with the given
// id and tags it with final. Color and image are kept. Unknown ids are
// ignored.
func (b *Board) UpdateTile(id string, proposed geom.Geometry, final bool) (Tile, bool) {
	i := b.index(id)
	if i < 0 {
		return Tile{}, false
	}
	t := &b.tiles[i]
	t.Geometry = geom.Clamp(proposed, b.bounds)
	t.UpdateEnd = final
	observability.Board().OnTileUpdated(id, final)
	return b.view(*t), true
}

// DeleteTile removes the tile and clears the selection if it was selected.
func (b *Board) DeleteTile(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.tiles = slices.Delete(b.tiles, i, i+1)
	if b.selected == id {
		b.DeselectAll()
	}
	observability.Board().OnTileDeleted(id)
	b.logger.Debug("tile deleted", "id", id)
	return true
}

// Tile returns the tile with the given id.
func (b *Board) Tile(id string) (Tile, bool) {
	i := b.index(id)
	if i < 0 {
		return Tile{}, false
	}
	return b.view(b.tiles[i]), true
}

// Tiles returns a copy of the tiles in insertion order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = b.view(t)
	}
	return out
}

// Len returns the number of tiles.
func (b *Board) Len() int { return len(b.tiles) }

// TileAt returns the id of the last-inserted tile containing (x, y).
func (b *Board) TileAt(x, y float64) (string, bool) {
	for i := len(b.tiles) - 1; i >= 0; i-- {
		if b.tiles[i].Contains(x, y) {
			return b.tiles[i].ID, true
		}
	}
	return "", false
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.tiles, func(t Tile) bool { return t.ID == id })
}

func (b *Board) view(t Tile) Tile {
	t.Selected = t.ID != "" && t.ID == b.selected
	return t
}

// =============================================================================
// Selection
// =============================================================================

// Select makes id the only selected tile and attaches the gesture source to
// it. It reports false for unknown ids.
func (b *Board) Select(id string) bool {
	if b.index(id) < 0 {
		return false
	}
	if b.selected == id {
		return true
	}
	b.detachGesture()
	b.selected = id
	b.state = Selected
	if b.gestures != nil {
		b.detach = b.gestures.Attach(tileTarget{b: b, id: id}, newTileHandler(b, id))
	}
	observability.Board().OnSelectionChanged(id)
	return true
}

// DeselectAll clears the selection slot.
func (b *Board) DeselectAll() {
	if b.selected == "" {
		return
	}
	b.detachGesture()
	b.selected = ""
	b.state = Idle
	observability.Board().OnSelectionChanged("")
}

// Selected returns the selected tile id.
func (b *Board) Selected() (string, bool) {
	return b.selected, b.selected != ""
}

// State returns the gesture state of the tile with the given id.
func (b *Board) State(id string) TileState {
	if id == "" || id != b.selected {
		return Idle
	}
	return b.state
}

func (b *Board) setState(id string, s TileState) {
	if id == b.selected {
		b.state = s
	}
}

func (b *Board) detachGesture() {
	if b.detach != nil {
		detach := b.detach
		b.detach = nil
		detach()
	}
}

// tileTarget exposes a tile's stored geometry to the gesture source.
type tileTarget struct {
	b  *Board
	id string
}

func (t tileTarget) Geometry() (geom.Geometry, bool) {
	tile, ok := t.b.Tile(t.id)
	return tile.Geometry, ok
}
