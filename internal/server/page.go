package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/repositories"
	"github.com/desertthunder/hbnb/internal/search"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/hbnb.html"))

// Page renders the HTML landing page listing states, amenities and places.
type Page struct {
	store  *repositories.Store
	logger *log.Logger
}

type pageData struct {
	CacheID   string
	StatusURL string
	States    []search.StateCities
	Amenities []*models.Amenity
	Places    []placeView
}

type placeView struct {
	*models.Place
	Amenities []*models.Amenity
}

// NewPage creates a [Page] over store.
func NewPage(store *repositories.Store, logger *log.Logger) *Page {
	return &Page{store: store, logger: logger}
}

// Routes implements [Handler].
func (p *Page) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/hbnb", Handler: p.serve},
		{Method: http.MethodGet, Path: "/3-hbnb", Handler: p.serve},
	}
}

func (p *Page) serve(w http.ResponseWriter, r *http.Request) {
	ix, err := p.store.Snapshot(r.Context())
	if err != nil {
		p.logger.Error("failed to load page data", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		CacheID:   uuid.NewString(),
		StatusURL: APIPrefix + "/status",
		States:    ix.ByName(),
		Amenities: ix.AmenitiesByName(),
	}
	for _, place := range ix.PlacesByName() {
		data.Places = append(data.Places, placeView{Place: place, Amenities: ix.AmenitiesOf(place.ID())})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		p.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
