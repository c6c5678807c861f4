package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// serveRouter mounts the serving handlers with the same route patterns the
// application router uses, so chi URL params resolve.
func serveRouter(h *Stories) chi.Router {
	r := chi.NewRouter()
	r.Get("/stories/{slug}.html", h.ServeStory)
	r.Get("/stories/{slug}/metadata.json", h.ServeMetadata)
	return r
}

func TestServeStory(t *testing.T) {
	h := &Stories{Store: NewMemoryStore()}
	h.Store.Save(context.Background(), "demo_abc_G",
		[]byte("<html>story</html>"), []byte(`{"story_title": "Demo"}`))

	r := serveRouter(h)

	t.Run("hit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories/demo_abc_G.html", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
			t.Errorf("Content-Type: %q", got)
		}
		if rr.Body.String() != "<html>story</html>" {
			t.Errorf("body: %q", rr.Body.String())
		}
	})

	t.Run("miss", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories/unknown_slug.html", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})
}

func TestServeMetadata(t *testing.T) {
	h := &Stories{Store: NewMemoryStore()}
	h.Store.Save(context.Background(), "demo_abc_G",
		[]byte("<html></html>"), []byte(`{"story_title": "Demo"}`))

	r := serveRouter(h)

	t.Run("hit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories/demo_abc_G/metadata.json", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type: %q", got)
		}
		if rr.Body.String() != `{"story_title": "Demo"}` {
			t.Errorf("body: %q", rr.Body.String())
		}
	})

	t.Run("miss", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories/unknown_slug/metadata.json", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, ok := m.HTML(ctx, "x"); ok {
		t.Error("expected miss on empty store")
	}

	if err := m.Save(ctx, "x", []byte("h"), []byte("m")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v, ok := m.HTML(ctx, "x"); !ok || string(v) != "h" {
		t.Errorf("HTML: got %q ok=%v", v, ok)
	}
	if v, ok := m.Metadata(ctx, "x"); !ok || string(v) != "m" {
		t.Errorf("Metadata: got %q ok=%v", v, ok)
	}
}
