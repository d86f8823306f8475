package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/shared"
)

// Store bundles the per-entity repositories behind kind-based accessors.
type Store struct {
	db        *sql.DB
	States    *StateRepository
	Cities    *CityRepository
	Amenities *AmenityRepository
	Users     *UserRepository
	Places    *PlaceRepository
}

// NewStore creates a [Store] over db. Migrations must already be applied.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		States:    NewStateRepository(db),
		Cities:    NewCityRepository(db),
		Amenities: NewAmenityRepository(db),
		Users:     NewUserRepository(db),
		Places:    NewPlaceRepository(db),
	}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Get retrieves a live record of the given kind.
func (s *Store) Get(kind models.Kind, id string) (models.Model, error) {
	switch kind {
	case models.KindState:
		return s.States.Get(id)
	case models.KindCity:
		return s.Cities.Get(id)
	case models.KindAmenity:
		return s.Amenities.Get(id)
	case models.KindUser:
		return s.Users.Get(id)
	case models.KindPlace:
		return s.Places.Get(id)
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
}

// List returns every live record of kind in sequence order.
func (s *Store) List(kind models.Kind) ([]models.Model, error) {
	switch kind {
	case models.KindState:
		return collect(s.States.List(nil))
	case models.KindCity:
		return collect(s.Cities.List(nil))
	case models.KindAmenity:
		return collect(s.Amenities.List(nil))
	case models.KindUser:
		return collect(s.Users.List(nil))
	case models.KindPlace:
		return collect(s.Places.List(nil))
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
}

// All returns every live record of kind keyed by id.
func (s *Store) All(kind models.Kind) (map[string]models.Model, error) {
	items, err := s.List(kind)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Model, len(items))
	for _, m := range items {
		out[m.ID()] = m
	}
	return out, nil
}

// Count returns the number of live records of kind.
func (s *Store) Count(kind models.Kind) (int, error) {
	switch kind {
	case models.KindState:
		return s.States.Count()
	case models.KindCity:
		return s.Cities.Count()
	case models.KindAmenity:
		return s.Amenities.Count()
	case models.KindUser:
		return s.Users.Count()
	case models.KindPlace:
		return s.Places.Count()
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
}

// Stats counts every kind, keyed by its plural name.
func (s *Store) Stats() (map[string]int, error) {
	stats := make(map[string]int, len(models.Kinds))
	for _, kind := range models.Kinds {
		n, err := s.Count(kind)
		if err != nil {
			return nil, err
		}
		stats[kind.Plural()] = n
	}
	return stats, nil
}

// Delete soft-deletes a record of kind, cascading like the matching repository.
func (s *Store) Delete(kind models.Kind, id string) error {
	switch kind {
	case models.KindState:
		return s.States.Delete(id)
	case models.KindCity:
		return s.Cities.Delete(id)
	case models.KindAmenity:
		return s.Amenities.Delete(id)
	case models.KindUser:
		return s.Users.Delete(id)
	case models.KindPlace:
		return s.Places.Delete(id)
	}
	return fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
}

// Save writes the mutable fields of m back to its repository.
func (s *Store) Save(m models.Model) error {
	switch v := m.(type) {
	case *models.State:
		return s.States.Update(v)
	case *models.City:
		return s.Cities.Update(v)
	case *models.Amenity:
		return s.Amenities.Update(v)
	case *models.User:
		return s.Users.Update(v)
	case *models.Place:
		return s.Places.Update(v)
	}
	return fmt.Errorf("%w: %T", shared.ErrUnknownKind, m)
}

// Snapshot loads every live state, city, amenity, place and amenity link inside one transaction
// and returns them as a [search.Index].
func (s *Store) Snapshot(ctx context.Context) (*search.Index, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	ix := search.NewIndex()

	states, err := s.States.list(ctx, tx, "SELECT "+stateColumns+" FROM states WHERE deleted_at IS NULL ORDER BY sequence ASC")
	if err != nil {
		return nil, err
	}
	for _, st := range states {
		ix.AddState(st)
	}

	cities, err := s.Cities.list(ctx, tx, "SELECT "+cityColumns+" FROM cities WHERE deleted_at IS NULL ORDER BY sequence ASC")
	if err != nil {
		return nil, err
	}
	for _, c := range cities {
		ix.AddCity(c)
	}

	amenities, err := s.Amenities.list(ctx, tx, "SELECT "+amenityColumns+" FROM amenities WHERE deleted_at IS NULL ORDER BY sequence ASC")
	if err != nil {
		return nil, err
	}
	for _, a := range amenities {
		ix.AddAmenity(a)
	}

	places, err := s.Places.list(ctx, tx, "SELECT "+placeColumns+" FROM places WHERE deleted_at IS NULL ORDER BY sequence ASC")
	if err != nil {
		return nil, err
	}
	for _, p := range places {
		ix.AddPlace(p)
	}

	type link struct{ place, amenity string }
	links, err := queryAll(ctx, tx, func(row scanner) (link, error) {
		var l link
		err := row.Scan(&l.place, &l.amenity)
		return l, err
	}, "SELECT place_id, amenity_id FROM place_amenity")
	if err != nil {
		return nil, fmt.Errorf("failed to load amenity links: %w", err)
	}
	for _, l := range links {
		ix.Link(l.place, l.amenity)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot: %w", err)
	}
	return ix, nil
}

func collect[T models.Model](items []T, err error) ([]models.Model, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Model, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}
