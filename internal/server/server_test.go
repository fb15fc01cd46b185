package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tileboard/pkg/geom"
	"github.com/matzehuels/tileboard/pkg/images"
)

type stubImages struct {
	url string
	err error
}

func (s stubImages) RandomImage(context.Context) (string, error) { return s.url, s.err }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.NewID == nil {
		opts.NewID = sequentialIDs()
	}
	s := New(opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		t.Fatalf("%s %s status = %d, want %d (body: %s)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, buf.String())
	}
}

type tileJSON struct {
	ID        string  `json:"id"`
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	Selected  bool    `json:"selected"`
	UpdateEnd bool    `json:"updateEnd"`
	State     string  `json:"state"`
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp := do(t, ts, http.MethodGet, "/healthz", "")
	wantStatus(t, resp, http.StatusOK)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if buf.String() != "ok" {
		t.Errorf("body = %q, want ok", buf.String())
	}
}

func TestAddTile(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "http://img/1"}})

	resp := do(t, ts, http.MethodPost, "/api/tiles", "")
	wantStatus(t, resp, http.StatusCreated)
	got := decode[tileJSON](t, resp)

	if got.ID != "t1" || got.Image != "http://img/1" || !got.UpdateEnd {
		t.Errorf("tile = %+v", got)
	}
	if got.Width != 100 || got.Height != 100 || got.Top != 0 || got.Left != 0 {
		t.Errorf("geometry = %+v, want 0,0,100,100", got)
	}
	if got.Color == "" || got.State != "idle" {
		t.Errorf("color=%q state=%q", got.Color, got.State)
	}

	list := decode[[]tileJSON](t, do(t, ts, http.MethodGet, "/api/tiles", ""))
	if len(list) != 1 {
		t.Fatalf("tiles = %d, want 1", len(list))
	}
}

func TestAddTileFetchFailure(t *testing.T) {
	for name, opts := range map[string]Options{
		"provider error": {Images: stubImages{err: fmt.Errorf("boom")}},
		"no provider":    {},
	} {
		t.Run(name, func(t *testing.T) {
			ts := newTestServer(t, opts)
			wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusNoContent)
			list := decode[[]tileJSON](t, do(t, ts, http.MethodGet, "/api/tiles", ""))
			if len(list) != 0 {
				t.Errorf("tiles = %d, want 0", len(list))
			}
		})
	}
}

func TestUpdateTileClampsToBounds(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "u"}})
	wantStatus(t, do(t, ts, http.MethodPut, "/api/bounds", `{"width":200,"height":200}`), http.StatusOK)
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusCreated)

	resp := do(t, ts, http.MethodPatch, "/api/tiles/t1", `{"top":150,"left":-20,"width":100,"height":100,"final":true}`)
	wantStatus(t, resp, http.StatusOK)
	got := decode[tileJSON](t, resp)

	want := geom.Geometry{Top: 100, Left: 0, Width: 100, Height: 100}
	if diff := cmp.Diff(want, geom.Geometry{Top: got.Top, Left: got.Left, Width: got.Width, Height: got.Height}); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
	if !got.UpdateEnd {
		t.Error("updateEnd should be true")
	}
}

func TestUpdateTilePartial(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "u"}})
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusCreated)

	got := decode[tileJSON](t, do(t, ts, http.MethodPatch, "/api/tiles/t1", `{"left":30}`))
	if got.Left != 30 || got.Width != 100 || got.Top != 0 {
		t.Errorf("tile = %+v", got)
	}
	if got.UpdateEnd {
		t.Error("updateEnd should be false for a non-final update")
	}
}

func TestUpdateTileErrors(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "u"}})
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusCreated)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown id", "/api/tiles/nope", `{"top":1}`, http.StatusNoContent, ""},
		{"bad json", "/api/tiles/t1", `{"top":`, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"unknown field", "/api/tiles/t1", `{"depth":1}`, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"zero width", "/api/tiles/t1", `{"width":0}`, http.StatusBadRequest, "INVALID_GEOMETRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, ts, http.MethodPatch, tt.path, tt.body)
			wantStatus(t, resp, tt.status)
			if tt.code == "" {
				return
			}
			e := decode[errorResponse](t, resp)
			if string(e.Code) != tt.code || e.Message == "" {
				t.Errorf("error = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestSelectAndDeselect(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "u"}})
	for range 2 {
		wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusCreated)
	}

	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles/t2/select", ""), http.StatusNoContent)
	list := decode[[]tileJSON](t, do(t, ts, http.MethodGet, "/api/tiles", ""))
	if list[0].Selected || !list[1].Selected || list[1].State != "selected" {
		t.Errorf("after select: %+v", list)
	}

	wantStatus(t, do(t, ts, http.MethodPost, "/api/deselect", ""), http.StatusNoContent)
	list = decode[[]tileJSON](t, do(t, ts, http.MethodGet, "/api/tiles", ""))
	for _, tile := range list {
		if tile.Selected {
			t.Errorf("tile %s still selected", tile.ID)
		}
	}

	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles/nope/select", ""), http.StatusNoContent)
}

func TestDeleteTile(t *testing.T) {
	ts := newTestServer(t, Options{Images: stubImages{url: "u"}})
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusCreated)
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles/t1/select", ""), http.StatusNoContent)

	wantStatus(t, do(t, ts, http.MethodDelete, "/api/tiles/t1", ""), http.StatusNoContent)
	wantStatus(t, do(t, ts, http.MethodGet, "/api/tiles/t1", ""), http.StatusNotFound)
	wantStatus(t, do(t, ts, http.MethodDelete, "/api/tiles/t1", ""), http.StatusNoContent)

	list := decode[[]tileJSON](t, do(t, ts, http.MethodGet, "/api/tiles", ""))
	if len(list) != 0 {
		t.Errorf("tiles = %d, want 0", len(list))
	}
}

func TestBounds(t *testing.T) {
	ts := newTestServer(t, Options{})
	wantStatus(t, do(t, ts, http.MethodGet, "/api/bounds", ""), http.StatusNoContent)

	wantStatus(t, do(t, ts, http.MethodPut, "/api/bounds", `{"width":-1,"height":5}`), http.StatusBadRequest)
	wantStatus(t, do(t, ts, http.MethodPut, "/api/bounds", `{"width":640,"height":480}`), http.StatusOK)

	got := decode[geom.Bounds](t, do(t, ts, http.MethodGet, "/api/bounds", ""))
	if diff := cmp.Diff(geom.Bounds{Width: 640, Height: 480}, got); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestImagesRouteFeedsProvider(t *testing.T) {
	imgSrv := New(Options{LocalImages: 5, ImageBaseURL: "http://img.test"})
	defer imgSrv.Close()
	imgTS := httptest.NewServer(imgSrv.Handler())
	defer imgTS.Close()

	photos := decode[[]images.Photo](t, do(t, imgTS, http.MethodGet, "/api/images", ""))
	if len(photos) != 5 {
		t.Fatalf("photos = %d, want 5", len(photos))
	}

	provider := images.NewClient(images.Options{URL: imgTS.URL + "/api/images", HTTPClient: imgTS.Client()})
	ts := newTestServer(t, Options{Images: provider})
	got := decode[tileJSON](t, do(t, ts, http.MethodPost, "/api/tiles", ""))
	if !strings.HasPrefix(got.Image, "http://img.test/600/") {
		t.Errorf("image = %q", got.Image)
	}
}

func TestAddAfterCloseIsDropped(t *testing.T) {
	s := New(Options{Images: stubImages{url: "u"}, NewID: sequentialIDs()})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Close()
	wantStatus(t, do(t, ts, http.MethodPost, "/api/tiles", ""), http.StatusNoContent)
}

func TestInitialBounds(t *testing.T) {
	ts := newTestServer(t, Options{Bounds: &geom.Bounds{Width: 800, Height: 600}})
	got := decode[geom.Bounds](t, do(t, ts, http.MethodGet, "/api/bounds", ""))
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("bounds = %+v, want 800x600", got)
	}
}
