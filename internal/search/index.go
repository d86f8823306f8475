package search

import (
	"sort"
	"strings"

	"github.com/desertthunder/hbnb/internal/models"
)

// Catalog is the read-only view of storage the filter needs.
type Catalog interface {
	State(id string) (*models.State, bool)     // State resolves a state id
	City(id string) (*models.City, bool)       // City resolves a city id
	Amenity(id string) (*models.Amenity, bool) // Amenity resolves an amenity id
	Places() []*models.Place                   // Places returns every place
	CitiesOf(stateID string) []*models.City    // CitiesOf returns the cities of a state
	PlacesOf(cityID string) []*models.Place    // PlacesOf returns the places of a city
	HasAmenity(placeID, amenityID string) bool // HasAmenity reports place/amenity membership
}

// Index is an in-memory [Catalog]. Collections keep insertion order.
//
// An Index is not safe for concurrent mutation; once built it may be read from many goroutines.
type Index struct {
	states    map[string]*models.State
	cities    map[string]*models.City
	amenities map[string]*models.Amenity
	places    map[string]*models.Place

	stateOrder   []*models.State
	amenityOrder []*models.Amenity
	placeOrder   []*models.Place

	citiesByState    map[string][]*models.City
	placesByCity     map[string][]*models.Place
	amenitiesByPlace map[string]map[string]struct{}
}

var _ Catalog = (*Index)(nil)

// NewIndex returns an empty [Index].
func NewIndex() *Index {
	return &Index{
		states:           make(map[string]*models.State),
		cities:           make(map[string]*models.City),
		amenities:        make(map[string]*models.Amenity),
		places:           make(map[string]*models.Place),
		citiesByState:    make(map[string][]*models.City),
		placesByCity:     make(map[string][]*models.Place),
		amenitiesByPlace: make(map[string]map[string]struct{}),
	}
}

func (ix *Index) AddState(s *models.State) {
	if _, ok := ix.states[s.ID()]; ok {
		return
	}
	ix.states[s.ID()] = s
	ix.stateOrder = append(ix.stateOrder, s)
}

func (ix *Index) AddCity(c *models.City) {
	if _, ok := ix.cities[c.ID()]; ok {
		return
	}
	ix.cities[c.ID()] = c
	ix.citiesByState[c.StateID()] = append(ix.citiesByState[c.StateID()], c)
}

func (ix *Index) AddAmenity(a *models.Amenity) {
	if _, ok := ix.amenities[a.ID()]; ok {
		return
	}
	ix.amenities[a.ID()] = a
	ix.amenityOrder = append(ix.amenityOrder, a)
}

func (ix *Index) AddPlace(p *models.Place) {
	if _, ok := ix.places[p.ID()]; ok {
		return
	}
	ix.places[p.ID()] = p
	ix.placeOrder = append(ix.placeOrder, p)
	ix.placesByCity[p.CityID()] = append(ix.placesByCity[p.CityID()], p)
}

// Link records that placeID offers amenityID. Repeated links are no-ops.
func (ix *Index) Link(placeID, amenityID string) {
	set, ok := ix.amenitiesByPlace[placeID]
	if !ok {
		set = make(map[string]struct{})
		ix.amenitiesByPlace[placeID] = set
	}
	set[amenityID] = struct{}{}
}

func (ix *Index) State(id string) (*models.State, bool) {
	s, ok := ix.states[id]
	return s, ok
}

func (ix *Index) City(id string) (*models.City, bool) {
	c, ok := ix.cities[id]
	return c, ok
}

func (ix *Index) Amenity(id string) (*models.Amenity, bool) {
	a, ok := ix.amenities[id]
	return a, ok
}

func (ix *Index) Place(id string) (*models.Place, bool) {
	p, ok := ix.places[id]
	return p, ok
}

func (ix *Index) States() []*models.State            { return ix.stateOrder }
func (ix *Index) Amenities() []*models.Amenity       { return ix.amenityOrder }
func (ix *Index) Places() []*models.Place            { return ix.placeOrder }
func (ix *Index) CitiesOf(id string) []*models.City  { return ix.citiesByState[id] }
func (ix *Index) PlacesOf(id string) []*models.Place { return ix.placesByCity[id] }

func (ix *Index) HasAmenity(placeID, amenityID string) bool {
	_, ok := ix.amenitiesByPlace[placeID][amenityID]
	return ok
}

// AmenitiesOf returns the amenities of a place in amenity insertion order.
func (ix *Index) AmenitiesOf(placeID string) []*models.Amenity {
	set := ix.amenitiesByPlace[placeID]
	if len(set) == 0 {
		return nil
	}
	out := make([]*models.Amenity, 0, len(set))
	for _, a := range ix.amenityOrder {
		if _, ok := set[a.ID()]; ok {
			out = append(out, a)
		}
	}
	return out
}

// StateCities pairs a state with its cities for listing pages.
type StateCities struct {
	State  *models.State
	Cities []*models.City
}

// ByName returns states sorted by name, each with its cities sorted by name.
func (ix *Index) ByName() []StateCities {
	states := append([]*models.State(nil), ix.stateOrder...)
	sort.SliceStable(states, func(i, j int) bool { return lessFold(states[i].Name(), states[j].Name()) })

	out := make([]StateCities, 0, len(states))
	for _, s := range states {
		cities := append([]*models.City(nil), ix.citiesByState[s.ID()]...)
		sort.SliceStable(cities, func(i, j int) bool { return lessFold(cities[i].Name(), cities[j].Name()) })
		out = append(out, StateCities{State: s, Cities: cities})
	}
	return out
}

// AmenitiesByName returns amenities sorted by name.
func (ix *Index) AmenitiesByName() []*models.Amenity {
	out := append([]*models.Amenity(nil), ix.amenityOrder...)
	sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name(), out[j].Name()) })
	return out
}

// PlacesByName returns places sorted by name.
func (ix *Index) PlacesByName() []*models.Place {
	out := append([]*models.Place(nil), ix.placeOrder...)
	sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name(), out[j].Name()) })
	return out
}

func lessFold(a, b string) bool {
	if la, lb := strings.ToLower(a), strings.ToLower(b); la != lb {
		return la < lb
	}
	return a < b
}
