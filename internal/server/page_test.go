package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/hbnb/internal/models"
)

func TestPage(t *testing.T) {
	h, store := newTestServer(t)
	seedPlaces(t, store)
	for _, name := range []string{"Alaska", "<b>Zion</b>"} {
		if err := store.States.Create(models.NewState(0, name)); err != nil {
			t.Fatalf("failed to create state: %v", err)
		}
	}

	rec := do(t, h, http.MethodGet, "/hbnb", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html, got %s", ct)
	}

	body := rec.Body.String()
	alaska, s1, s2 := strings.Index(body, "<h2>Alaska</h2>"), strings.Index(body, "<h2>S1</h2>"), strings.Index(body, "<h2>S2</h2>")
	if alaska < 0 || s1 < 0 || s2 < 0 || !(alaska < s1 && s1 < s2) {
		t.Errorf("expected states sorted by name, got positions %d %d %d", alaska, s1, s2)
	}
	if strings.Contains(body, "<b>Zion</b>") || !strings.Contains(body, "&lt;b&gt;Zion&lt;/b&gt;") {
		t.Error("expected state names to be escaped")
	}
	for _, want := range []string{"Wifi", "Pool", "<h2>P1</h2>", "<h2>P3</h2>", "data-cache-id="} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}

	for _, want := range []string{`amenities.addEventListener("change"`, "amenities.dataset.ids", `<div class="amenities" data-ids="">`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected amenity filter script to contain %q", want)
		}
	}

	again := do(t, h, http.MethodGet, "/hbnb/", "").Body.String()
	if cacheID(body) == "" || cacheID(body) == cacheID(again) {
		t.Error("expected a fresh cache id per render")
	}
}

func TestPageAlias(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/3-hbnb/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "data-cache-id=") {
		t.Error("expected the landing page")
	}
}

func cacheID(body string) string {
	_, rest, ok := strings.Cut(body, `data-cache-id="`)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, `"`)
	return id
}
