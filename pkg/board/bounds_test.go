package board

import (
	"testing"

	"github.com/matzehuels/tileboard/pkg/geom"
)

func TestBoundsTracker(t *testing.T) {
	var feed SizeFeed
	var tracker BoundsTracker
	var got []geom.Bounds

	tracker.Start(&feed, func(b geom.Bounds) { got = append(got, b) })
	tracker.Start(&feed, func(b geom.Bounds) { t.Error("second Start() should not subscribe") })
	if !tracker.Observing() {
		t.Fatal("Observing() = false after Start()")
	}

	feed.Publish(geom.Bounds{Width: 10, Height: 20})
	feed.Publish(geom.Bounds{Width: 30, Height: 40})

	tracker.Stop()
	tracker.Stop()
	feed.Publish(geom.Bounds{Width: 50, Height: 60})

	if len(got) != 2 {
		t.Fatalf("published %d bounds, want 2: %v", len(got), got)
	}
	if got[1] != (geom.Bounds{Width: 30, Height: 40}) {
		t.Errorf("last bounds = %v, want 30x40", got[1])
	}
	if feed.Observers() != 0 {
		t.Errorf("Observers() = %d after Stop(), want 0", feed.Observers())
	}
}

func TestBoundsTrackerNilObserver(t *testing.T) {
	var tracker BoundsTracker
	tracker.Start(nil, func(geom.Bounds) {})
	if tracker.Observing() {
		t.Error("Start(nil) should not observe")
	}
	tracker.Stop()
}

func TestSizeFeedDeliversLastOnObserve(t *testing.T) {
	var feed SizeFeed
	feed.Publish(geom.Bounds{Width: 80, Height: 24})

	var got geom.Bounds
	stop := feed.Observe(func(b geom.Bounds) { got = b })
	defer stop()

	if got != (geom.Bounds{Width: 80, Height: 24}) {
		t.Errorf("initial observation = %v, want 80x24", got)
	}
}

func TestClickFeed(t *testing.T) {
	var feed ClickFeed
	var a, b int

	removeA := feed.OnClick(func() { a++ })
	feed.OnClick(func() { b++ })

	feed.Click()
	removeA()
	feed.Click()

	if a != 1 || b != 2 {
		t.Errorf("clicks = %d, %d; want 1, 2", a, b)
	}
	if feed.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", feed.Listeners())
	}
}
