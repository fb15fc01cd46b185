// Package pkg holds the libraries behind the tileboard editor.
//
// # Overview
//
// A board is a bounded canvas of colored image tiles. Tiles are added with a
// random image, dragged and resized through a pointer gesture source, and
// always clamped to the canvas. The libraries are independent of the
// terminal: the editor in internal/cli and the HTTP surface in
// internal/server drive the same [board] package.
//
//	[images] (image list over HTTP, cached by [cache])
//	     ↓
//	[board] (tiles, selection, bounds tracking)
//	     ↑             ↓
//	[gesture]        [geom] (clamping, size caps)
//
// # Quick Start
//
//	feed := &board.SizeFeed{}
//	clicks := &board.ClickFeed{}
//	ptr := gesture.NewPointer(10, 20)
//
//	b := board.New(board.Options{
//	    Images:   images.NewClient(images.Options{URL: config.DefaultImagesURL}),
//	    Gestures: ptr,
//	})
//	b.Mount(feed, clicks)
//	defer b.Teardown()
//
//	feed.Publish(geom.Bounds{Width: 800, Height: 600})
//	t, ok := b.AddTile(ctx)
//
// Supporting packages: [config] loads TOML settings, [errors] defines coded
// errors, [observability] carries event hooks and [buildinfo] the version.
//
// [board]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/board
// [geom]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/geom
// [gesture]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/gesture
// [images]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/images
// [cache]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tileboard/pkg/buildinfo
package pkg
