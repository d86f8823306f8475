package search

import "github.com/desertthunder/hbnb/internal/models"

// Query holds the ids sent to places_search. Any slice may be empty.
type Query struct {
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
	Amenities []string `json:"amenities"`
}

// IsEmpty reports whether no filter id was given.
func (q Query) IsEmpty() bool {
	return len(q.States) == 0 && len(q.Cities) == 0 && len(q.Amenities) == 0
}

// Filter returns the places of c matching q.
//
// Result order follows candidate enumeration: requested states in order (their cities as the catalog
// lists them), then requested cities in order, then each city's places. With no state or city ids
// that resolve, the candidates are [Catalog.Places] in catalog order.
func Filter(c Catalog, q Query) []*models.Place {
	candidates := candidates(c, q)
	required := resolveAmenities(c, q.Amenities)

	results := make([]*models.Place, 0, len(candidates))
	for _, p := range candidates {
		if hasAll(c, p, required) {
			results = append(results, p)
		}
	}
	return results
}

// candidates resolves the state and city ids. When none of them resolves the
// request is treated as unfiltered, so unknown ids behave exactly like absent ones.
func candidates(c Catalog, q Query) []*models.Place {
	var states []*models.State
	for _, id := range q.States {
		if s, ok := c.State(id); ok {
			states = append(states, s)
		}
	}
	var direct []*models.City
	for _, id := range q.Cities {
		if city, ok := c.City(id); ok {
			direct = append(direct, city)
		}
	}

	if len(states) == 0 && len(direct) == 0 {
		return c.Places()
	}

	seen := make(map[string]struct{})
	var cities []*models.City
	add := func(city *models.City) {
		if _, ok := seen[city.ID()]; ok {
			return
		}
		seen[city.ID()] = struct{}{}
		cities = append(cities, city)
	}

	for _, s := range states {
		for _, city := range c.CitiesOf(s.ID()) {
			add(city)
		}
	}
	for _, city := range direct {
		add(city)
	}

	var places []*models.Place
	for _, city := range cities {
		places = append(places, c.PlacesOf(city.ID())...)
	}
	return places
}

// resolveAmenities drops unknown and repeated ids.
func resolveAmenities(c Catalog, ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	required := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := c.Amenity(id); ok {
			required = append(required, id)
		}
	}
	return required
}

func hasAll(c Catalog, p *models.Place, amenityIDs []string) bool {
	for _, id := range amenityIDs {
		if !c.HasAmenity(p.ID(), id) {
			return false
		}
	}
	return true
}
