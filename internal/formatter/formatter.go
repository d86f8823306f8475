// package formatter renders place listings as JSON, CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/shared"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "csv", "md", "text"}

// Listing is a titled set of places with the names of their amenities.
type Listing struct {
	Title     string
	Places    []*models.Place
	Amenities map[string][]string // amenity names keyed by place ID
}

// NewListing builds a [Listing], reading amenity names from ix when it is not nil.
func NewListing(title string, places []*models.Place, ix *search.Index) *Listing {
	l := &Listing{Title: title, Places: places, Amenities: make(map[string][]string, len(places))}
	if ix == nil {
		return l
	}
	for _, p := range places {
		for _, a := range ix.AmenitiesOf(p.ID()) {
			l.Amenities[p.ID()] = append(l.Amenities[p.ID()], a.Name())
		}
	}
	return l
}

// Format renders l in the named format.
func Format(l *Listing, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return ExportToJSON(l)
	case "csv":
		return ExportToCSV(l)
	case "md", "markdown":
		return ExportToMarkdown(l)
	case "text", "txt":
		return ExportToText(l)
	}
	return nil, fmt.Errorf("%w: format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return ".csv"
	case "md", "markdown":
		return ".md"
	case "text", "txt":
		return ".txt"
	}
	return ".json"
}

// ExportToJSON renders the places as an indented array of serialized records, each with an "amenities" list of names.
func ExportToJSON(l *Listing) ([]byte, error) {
	out := make([]map[string]any, 0, len(l.Places))
	for _, p := range l.Places {
		d := p.Dict()
		names := l.Amenities[p.ID()]
		if names == nil {
			names = []string{}
		}
		d["amenities"] = names
		out = append(out, d)
	}
	return shared.MarshalJSON(out, true)
}

// ExportToCSV renders one row per place with columns:
// ID, Name, CityID, UserID, Rooms, Bathrooms, MaxGuest, PriceByNight, Latitude, Longitude, Amenities
func ExportToCSV(l *Listing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "CityID", "UserID", "Rooms", "Bathrooms", "MaxGuest", "PriceByNight", "Latitude", "Longitude", "Amenities"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range l.Places {
		a := p.Attrs()
		record := []string{
			p.ID(),
			a.Name,
			p.CityID(),
			p.UserID(),
			strconv.Itoa(a.NumberRooms),
			strconv.Itoa(a.NumberBathrooms),
			strconv.Itoa(a.MaxGuest),
			strconv.Itoa(a.PriceByNight),
			formatCoord(a.Latitude),
			formatCoord(a.Longitude),
			strings.Join(l.Amenities[p.ID()], ";"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, the place count and a numbered list of places.
func ExportToMarkdown(l *Listing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", l.Title)
	fmt.Fprintf(&buf, "**Places**: %d\n\n", len(l.Places))

	if len(l.Places) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("## Places\n\n")
	for i, p := range l.Places {
		a := p.Attrs()
		fmt.Fprintf(&buf, "%d. **%s** - $%d/night, %s, %s", i+1, a.Name, a.PriceByNight,
			plural(a.MaxGuest, "guest"), plural(a.NumberRooms, "room"))
		if names := l.Amenities[p.ID()]; len(names) > 0 {
			fmt.Fprintf(&buf, " (%s)", strings.Join(names, ", "))
		}
		buf.WriteString("\n")
		if a.Description != "" {
			fmt.Fprintf(&buf, "   > %s\n", a.Description)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText renders the title, the place count and one line per place.
func ExportToText(l *Listing) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", l.Title)
	fmt.Fprintf(&buf, "Places: %d\n\n", len(l.Places))

	for i, p := range l.Places {
		fmt.Fprintf(&buf, "%d. %s ($%d/night)\n", i+1, p.Name(), p.Attrs().PriceByNight)
	}

	return buf.Bytes(), nil
}

// WriteExport renders l and writes it to path, adding the format's extension when path has none.
func WriteExport(l *Listing, format, path string) (string, error) {
	data, err := Format(l, format)
	if err != nil {
		return "", err
	}

	if filepath.Ext(path) == "" {
		path += Extension(format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// WriteManifest writes v as indented JSON to path.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func formatCoord(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
