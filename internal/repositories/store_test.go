package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/shared"
)

func TestStore(t *testing.T) {
	t.Run("GetByKind", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		state := mustState(t, s, "California")

		m, err := s.Get(models.KindState, state.ID())
		if err != nil {
			t.Fatalf("failed to get state: %v", err)
		}
		if m.Kind() != models.KindState || m.ID() != state.ID() {
			t.Errorf("unexpected record %v", m.Dict())
		}

		if _, err := s.Get(models.KindCity, state.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for wrong kind, got %v", err)
		}
		if _, err := s.Get(models.Kind("Review"), state.ID()); !errors.Is(err, shared.ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("All", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		wifi := mustAmenity(t, s, "Wifi")
		pool := mustAmenity(t, s, "Pool")

		all, err := s.All(models.KindAmenity)
		if err != nil {
			t.Fatalf("failed to list amenities: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 amenities, got %d", len(all))
		}
		for _, a := range []*models.Amenity{wifi, pool} {
			if _, ok := all[a.ID()]; !ok {
				t.Errorf("expected %s in result", a.Name())
			}
		}
	})

	t.Run("Stats", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		state := mustState(t, s, "California")
		city := mustCity(t, s, state.ID(), "Fremont")
		user := mustUser(t, s, "betty@example.com")
		mustPlace(t, s, city.ID(), user.ID(), "Loft")
		mustPlace(t, s, city.ID(), user.ID(), "Studio")

		stats, err := s.Stats()
		if err != nil {
			t.Fatalf("failed to compute stats: %v", err)
		}
		want := map[string]int{"states": 1, "cities": 1, "amenities": 0, "users": 1, "places": 2}
		for k, v := range want {
			if stats[k] != v {
				t.Errorf("expected %s=%d, got %d", k, v, stats[k])
			}
		}
	})

	t.Run("SaveAndDelete", func(t *testing.T) {
		s := NewStore(setupTestDB(t))
		wifi := mustAmenity(t, s, "Wifi")

		m, _ := s.Get(models.KindAmenity, wifi.ID())
		if err := m.Apply(map[string]any{"name": "Wireless"}); err != nil {
			t.Fatalf("failed to apply: %v", err)
		}
		if err := s.Save(m); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := s.Delete(models.KindAmenity, wifi.ID()); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if err := s.Delete(models.KindAmenity, wifi.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestStoreSnapshot(t *testing.T) {
	s := NewStore(setupTestDB(t))
	s1 := mustState(t, s, "S1")
	s2 := mustState(t, s, "S2")
	c1 := mustCity(t, s, s1.ID(), "C1")
	c2 := mustCity(t, s, s2.ID(), "C2")
	user := mustUser(t, s, "betty@example.com")
	p1 := mustPlace(t, s, c1.ID(), user.ID(), "P1")
	p2 := mustPlace(t, s, c1.ID(), user.ID(), "P2")
	p3 := mustPlace(t, s, c2.ID(), user.ID(), "P3")
	gone := mustPlace(t, s, c2.ID(), user.ID(), "Gone")
	wifi := mustAmenity(t, s, "Wifi")

	for _, p := range []*models.Place{p1, p3} {
		if _, err := s.Places.LinkAmenity(p.ID(), wifi.ID()); err != nil {
			t.Fatalf("failed to link: %v", err)
		}
	}
	if err := s.Places.Delete(gone.ID()); err != nil {
		t.Fatalf("failed to delete place: %v", err)
	}

	ix, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("failed to take snapshot: %v", err)
	}

	t.Run("Contents", func(t *testing.T) {
		if len(ix.States()) != 2 || len(ix.Places()) != 3 {
			t.Errorf("expected 2 states and 3 places, got %d and %d", len(ix.States()), len(ix.Places()))
		}
		if _, ok := ix.Place(gone.ID()); ok {
			t.Error("deleted place should not be in the snapshot")
		}
		if got := ix.PlacesOf(c1.ID()); len(got) != 2 || got[0].ID() != p1.ID() || got[1].ID() != p2.ID() {
			t.Errorf("unexpected places of C1: %v", got)
		}
		if !ix.HasAmenity(p3.ID(), wifi.ID()) || ix.HasAmenity(p2.ID(), wifi.ID()) {
			t.Error("amenity links not loaded correctly")
		}
	})

	t.Run("Filter", func(t *testing.T) {
		got := search.Filter(ix, search.Query{States: []string{s1.ID()}, Amenities: []string{wifi.ID()}})
		if len(got) != 1 || got[0].ID() != p1.ID() {
			t.Errorf("expected only P1, got %v", got)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := s.Snapshot(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
