package errors

import (
	"math"
	"net/url"
)

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "url %q must use http or https", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "url %q has no host", raw)
	}
	return nil
}

// ValidateSize checks that a width/height pair is finite and positive.
func ValidateSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "size must be finite")
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidGeometry, "size must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidateOffset checks that a top/left pair is finite.
func ValidateOffset(top, left float64) error {
	for _, v := range []float64{top, left} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "position must be finite")
		}
	}
	return nil
}
