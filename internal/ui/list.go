package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
)

var (
	_ list.Item = stateItem{}
	_ list.Item = cityItem{}
	_ list.Item = placeItem{}
)

// stateItem wraps [models.State] to implement [list.Item].
type stateItem struct {
	state  *models.State
	cities int
}

func (i stateItem) FilterValue() string { return i.state.Name() }
func (i stateItem) Title() string       { return i.state.Name() }
func (i stateItem) Description() string { return plural(i.cities, "city", "cities") }

// cityItem wraps [models.City] to implement [list.Item].
type cityItem struct {
	city   *models.City
	places int
}

func (i cityItem) FilterValue() string { return i.city.Name() }
func (i cityItem) Title() string       { return i.city.Name() }
func (i cityItem) Description() string { return plural(i.places, "place", "places") }

// placeItem wraps [models.Place] to implement [list.Item].
type placeItem struct {
	place     *models.Place
	amenities []string
}

func (i placeItem) FilterValue() string { return i.place.Name() }
func (i placeItem) Title() string       { return i.place.Name() }
func (i placeItem) Description() string {
	a := i.place.Attrs()
	desc := fmt.Sprintf("$%d/night • %s", a.PriceByNight, plural(a.MaxGuest, "guest", "guests"))
	if len(i.amenities) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, strings.Join(i.amenities, ", "))
	}
	return desc
}

func stateItems(ix *search.Index) []list.Item {
	items := make([]list.Item, 0, len(ix.States()))
	for _, sc := range ix.ByName() {
		items = append(items, stateItem{state: sc.State, cities: len(sc.Cities)})
	}
	return items
}

func cityItems(ix *search.Index, stateID string) []list.Item {
	for _, sc := range ix.ByName() {
		if sc.State.ID() != stateID {
			continue
		}
		items := make([]list.Item, 0, len(sc.Cities))
		for _, c := range sc.Cities {
			items = append(items, cityItem{city: c, places: len(ix.PlacesOf(c.ID()))})
		}
		return items
	}
	return nil
}

func placeItems(ix *search.Index, cityID string) []list.Item {
	places := search.Filter(ix, search.Query{Cities: []string{cityID}})
	items := make([]list.Item, 0, len(places))
	for _, p := range places {
		items = append(items, placeItem{place: p, amenities: amenityNames(ix, p.ID())})
	}
	return items
}

func amenityNames(ix *search.Index, placeID string) []string {
	var names []string
	for _, a := range ix.AmenitiesOf(placeID) {
		names = append(names, a.Name())
	}
	return names
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
