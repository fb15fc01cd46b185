package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tileboard/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Fetched 5000 images (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// registerLogHooks routes board, cache and HTTP events to l at debug level.
func registerLogHooks(l *log.Logger) {
	h := logHooks{l: l}
	observability.SetBoardHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

type logHooks struct {
	l *log.Logger
}

func (h logHooks) OnTileAdded(id string) { h.l.Debug("tile added", "id", id) }

func (h logHooks) OnTileUpdated(id string, final bool) {
	if final {
		h.l.Debug("tile moved", "id", id)
	}
}

func (h logHooks) OnTileDeleted(id string) { h.l.Debug("tile deleted", "id", id) }

func (h logHooks) OnSelectionChanged(id string) {
	if id == "" {
		h.l.Debug("selection cleared")
		return
	}
	h.l.Debug("tile selected", "id", id)
}

func (h logHooks) OnBoundsChanged(width, height float64) {
	h.l.Debug("bounds", "width", width, "height", height)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.l.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.l.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.l.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.l.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.l.Debug("http response", "method", method, "host", host, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.l.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.BoardHooks = logHooks{}
	_ observability.CacheHooks = logHooks{}
	_ observability.HTTPHooks  = logHooks{}
)
