package images

import (
	"fmt"
	"strings"
)

// Local returns n photos pointing below baseURL, in the shape of the
// jsonplaceholder list. `tileboard serve` answers /api/images with it so the
// editor works without network access.
func Local(n int, baseURL string) []Photo {
	baseURL = strings.TrimRight(baseURL, "/")
	photos := make([]Photo, n)
	for i := range photos {
		id := i + 1
		hex := swatch(id)
		photos[i] = Photo{
			ID:           id,
			AlbumID:      (i / 50) + 1,
			Title:        fmt.Sprintf("swatch %s", hex),
			URL:          fmt.Sprintf("%s/600/%s", baseURL, hex),
			ThumbnailURL: fmt.Sprintf("%s/150/%s", baseURL, hex),
		}
	}
	return photos
}

// swatch derives a stable six-digit hex color from id.
func swatch(id int) string {
	v := uint32(id) * 2654435761
	return fmt.Sprintf("%06x", v&0xffffff)
}
