// package tasks implements bulk operations over HBnB storage.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/repositories"
	"github.com/desertthunder/hbnb/internal/shared"
)

// Fixture is a seed document. Places refer to their city, owner and amenities by name or email.
type Fixture struct {
	States    []StateFixture `json:"states"`
	Amenities []string       `json:"amenities"`
	Users     []UserFixture  `json:"users"`
	Places    []PlaceFixture `json:"places"`
}

// StateFixture is a state with the names of its cities.
type StateFixture struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// UserFixture is a user with a plaintext password, hashed on import.
type UserFixture struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PlaceFixture is a place. State is optional and only needed when the city name is ambiguous.
type PlaceFixture struct {
	Name            string   `json:"name"`
	State           string   `json:"state,omitempty"`
	City            string   `json:"city"`
	User            string   `json:"user"`
	Description     string   `json:"description,omitempty"`
	NumberRooms     int      `json:"number_rooms"`
	NumberBathrooms int      `json:"number_bathrooms"`
	MaxGuest        int      `json:"max_guest"`
	PriceByNight    int      `json:"price_by_night"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
}

// ParseFixture decodes a [Fixture] from JSON.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: fixture: %v", shared.ErrInvalidInput, err)
	}
	return &f, nil
}

// LoadFixture reads and decodes the fixture file at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return ParseFixture(f)
}

// SeedFailure describes one fixture record that could not be created.
type SeedFailure struct {
	Kind  models.Kind `json:"kind"`
	Name  string      `json:"name"`
	Error string      `json:"error"`
}

// SeedResult counts the records created by [Engine.Seed].
type SeedResult struct {
	States    int           `json:"states"`
	Cities    int           `json:"cities"`
	Amenities int           `json:"amenities"`
	Users     int           `json:"users"`
	Places    int           `json:"places"`
	Links     int           `json:"links"`
	Failures  []SeedFailure `json:"failures,omitempty"`
}

// Engine runs bulk operations against a [repositories.Store].
type Engine struct {
	store *repositories.Store
}

// NewEngine creates an [Engine] over store.
func NewEngine(store *repositories.Store) *Engine {
	return &Engine{store: store}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// seeder carries the name lookups built while a fixture is imported.
type seeder struct {
	*Engine
	progress  chan<- ProgressUpdate
	result    *SeedResult
	cities    map[string][]*models.City // by city name
	stateIDs  map[string]string         // state name -> id
	amenities map[string]string         // amenity name -> id
	users     map[string]string         // email -> id
}

// Seed creates every record of f in dependency order: states and their cities, amenities, users, then places
// with their amenity links. It stops early only when ctx is cancelled.
func (e *Engine) Seed(ctx context.Context, progress chan<- ProgressUpdate, f *Fixture) (*SeedResult, error) {
	s := &seeder{
		Engine:    e,
		progress:  progress,
		result:    &SeedResult{},
		cities:    make(map[string][]*models.City),
		stateIDs:  make(map[string]string),
		amenities: make(map[string]string),
		users:     make(map[string]string),
	}

	steps := []func(context.Context, *Fixture) error{s.seedStates, s.seedAmenities, s.seedUsers, s.seedPlaces}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return s.result, err
		}
	}
	return s.result, nil
}

func (s *seeder) fail(phase Phase, step, total int, kind models.Kind, name string, err error) {
	failure := SeedFailure{Kind: kind, Name: name, Error: err.Error()}
	s.result.Failures = append(s.result.Failures, failure)
	s.sendProgress(s.progress, seedFailedUpdate(phase, step, total, failure))
}

func (s *seeder) seedStates(ctx context.Context, f *Fixture) error {
	total := len(f.States)
	for i, sf := range f.States {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := models.NewState(0, sf.Name)
		if err := s.store.States.Create(state); err != nil {
			s.fail(SeedStates, i+1, total, models.KindState, sf.Name, err)
			continue
		}
		s.result.States++
		s.stateIDs[sf.Name] = state.ID()
		s.sendProgress(s.progress, seedUpdate(SeedStates, i+1, total, sf.Name))

		for j, name := range sf.Cities {
			city := models.NewCity(0, state.ID(), name)
			if err := s.store.Cities.Create(city); err != nil {
				s.fail(SeedCities, j+1, len(sf.Cities), models.KindCity, name, err)
				continue
			}
			s.result.Cities++
			s.cities[name] = append(s.cities[name], city)
			s.sendProgress(s.progress, seedUpdate(SeedCities, j+1, len(sf.Cities), sf.Name+"/"+name))
		}
	}
	return nil
}

func (s *seeder) seedAmenities(ctx context.Context, f *Fixture) error {
	total := len(f.Amenities)
	for i, name := range f.Amenities {
		if err := ctx.Err(); err != nil {
			return err
		}

		amenity := models.NewAmenity(0, name)
		if err := s.store.Amenities.Create(amenity); err != nil {
			s.fail(SeedAmenities, i+1, total, models.KindAmenity, name, err)
			continue
		}
		s.result.Amenities++
		s.amenities[name] = amenity.ID()
		s.sendProgress(s.progress, seedUpdate(SeedAmenities, i+1, total, name))
	}
	return nil
}

func (s *seeder) seedUsers(ctx context.Context, f *Fixture) error {
	total := len(f.Users)
	for i, uf := range f.Users {
		if err := ctx.Err(); err != nil {
			return err
		}

		user := models.NewUser(0, uf.Email, uf.FirstName, uf.LastName)
		if err := user.SetPassword(uf.Password); err != nil {
			s.fail(SeedUsers, i+1, total, models.KindUser, uf.Email, err)
			continue
		}
		if err := s.store.Users.Create(user); err != nil {
			s.fail(SeedUsers, i+1, total, models.KindUser, uf.Email, err)
			continue
		}
		s.result.Users++
		s.users[uf.Email] = user.ID()
		s.sendProgress(s.progress, seedUpdate(SeedUsers, i+1, total, uf.Email))
	}
	return nil
}

func (s *seeder) seedPlaces(ctx context.Context, f *Fixture) error {
	total := len(f.Places)
	for i, pf := range f.Places {
		if err := ctx.Err(); err != nil {
			return err
		}

		place, err := s.newPlace(pf)
		if err == nil {
			err = s.store.Places.Create(place)
		}
		if err != nil {
			s.fail(SeedPlaces, i+1, total, models.KindPlace, pf.Name, err)
			continue
		}
		s.result.Places++

		for _, name := range pf.Amenities {
			id, ok := s.amenities[name]
			if !ok {
				s.fail(SeedPlaces, i+1, total, models.KindAmenity, name, fmt.Errorf("%w: amenity %q", shared.ErrNotFound, name))
				continue
			}
			created, err := s.store.Places.LinkAmenity(place.ID(), id)
			if err != nil {
				s.fail(SeedPlaces, i+1, total, models.KindAmenity, name, err)
				continue
			}
			if created {
				s.result.Links++
			}
		}
		s.sendProgress(s.progress, seedUpdate(SeedPlaces, i+1, total, pf.Name))
	}
	return nil
}

// newPlace resolves the city and owner of pf.
func (s *seeder) newPlace(pf PlaceFixture) (*models.Place, error) {
	city, err := s.resolveCity(pf.State, pf.City)
	if err != nil {
		return nil, err
	}
	userID, ok := s.users[pf.User]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", shared.ErrNotFound, pf.User)
	}

	return models.NewPlace(0, city.ID(), userID, models.PlaceAttrs{
		Name:            pf.Name,
		Description:     pf.Description,
		NumberRooms:     pf.NumberRooms,
		NumberBathrooms: pf.NumberBathrooms,
		MaxGuest:        pf.MaxGuest,
		PriceByNight:    pf.PriceByNight,
		Latitude:        pf.Latitude,
		Longitude:       pf.Longitude,
	}), nil
}

func (s *seeder) resolveCity(state, name string) (*models.City, error) {
	candidates := s.cities[name]
	if state != "" {
		stateID := s.stateIDs[state]
		for _, c := range candidates {
			if c.StateID() == stateID {
				return c, nil
			}
		}
		return nil, fmt.Errorf("%w: city %q in state %q", shared.ErrNotFound, name, state)
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: city %q", shared.ErrNotFound, name)
	case 1:
		return candidates[0], nil
	}
	return nil, fmt.Errorf("%w: city %q exists in %d states, set \"state\"", shared.ErrInvalidInput, name, len(candidates))
}
