package search

import (
	"testing"

	"github.com/desertthunder/hbnb/internal/models"
)

func TestIndex(t *testing.T) {
	t.Run("lookups", func(t *testing.T) {
		f := newFixture()

		if _, ok := f.ix.State("S1"); !ok {
			t.Error("expected S1 to resolve")
		}
		if _, ok := f.ix.City("nope"); ok {
			t.Error("expected unknown city to miss")
		}
		if p, ok := f.ix.Place("P3"); !ok || p.Name() != "Villa" {
			t.Errorf("expected P3 Villa, got %v %v", p, ok)
		}
		if got := len(f.ix.CitiesOf("S2")); got != 2 {
			t.Errorf("expected 2 cities in S2, got %d", got)
		}
	})

	t.Run("duplicates are ignored", func(t *testing.T) {
		f := newFixture()
		again, _ := f.ix.Place("P1")
		f.ix.AddPlace(again)
		f.ix.Link("P1", "wifi")

		if got := len(f.ix.Places()); got != 4 {
			t.Errorf("expected 4 places, got %d", got)
		}
		if got := len(f.ix.PlacesOf("C1")); got != 2 {
			t.Errorf("expected 2 places in C1, got %d", got)
		}
		if got := len(f.ix.AmenitiesOf("P1")); got != 1 {
			t.Errorf("expected 1 amenity on P1, got %d", got)
		}
	})

	t.Run("AmenitiesOf keeps amenity order", func(t *testing.T) {
		f := newFixture()
		got := f.ix.AmenitiesOf("P3")
		if len(got) != 2 || got[0].ID() != "wifi" || got[1].ID() != "pool" {
			t.Errorf("unexpected amenities %v", got)
		}
		if f.ix.AmenitiesOf("P2") != nil {
			t.Error("expected no amenities for P2")
		}
	})

	t.Run("ByName sorts states and cities", func(t *testing.T) {
		f := newFixture()
		groups := f.ix.ByName()

		if len(groups) != 2 || groups[0].State.Name() != "Arizona" {
			t.Fatalf("expected Arizona first, got %v", groups)
		}
		if groups[0].Cities[0].Name() != "Page" || groups[0].Cities[1].Name() != "Tempe" {
			t.Errorf("expected cities sorted by name, got %s, %s", groups[0].Cities[0].Name(), groups[0].Cities[1].Name())
		}
		if f.ix.States()[0].Name() != "California" {
			t.Error("ByName must not reorder the index")
		}
	})

	t.Run("AmenitiesByName and PlacesByName", func(t *testing.T) {
		ix := NewIndex()
		for i, name := range []string{"wifi", "Pool", "air"} {
			a := models.NewAmenity(i, name)
			a.SetID(name)
			ix.AddAmenity(a)
		}
		got := ix.AmenitiesByName()
		if got[0].Name() != "air" || got[1].Name() != "Pool" || got[2].Name() != "wifi" {
			t.Errorf("expected case-insensitive order, got %s %s %s", got[0].Name(), got[1].Name(), got[2].Name())
		}

		f := newFixture()
		places := f.ix.PlacesByName()
		if places[0].Name() != "Cabin" || places[3].Name() != "Villa" {
			t.Errorf("unexpected place order %s .. %s", places[0].Name(), places[3].Name())
		}
	})
}
