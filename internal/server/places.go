package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
)

func (a *API) placesOfCity(w http.ResponseWriter, r *http.Request) {
	places, err := a.store.Places.ListByCity(mux.Vars(r)["city_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dicts(places))
}

// createPlace checks, in order: the city, the body, user_id, the user, then name.
// A null or empty user_id or name counts as missing.
func (a *API) createPlace(w http.ResponseWriter, r *http.Request) {
	city, err := a.store.Cities.Get(mux.Vars(r)["city_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}

	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !requireValue(w, obj, "user_id") {
		return
	}
	user, err := a.store.Users.Get(obj.Get("user_id").String())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !requireValue(w, obj, "name") {
		return
	}

	place := models.NewPlace(0, city.ID(), user.ID(), models.PlaceAttrs{})
	if err := place.Apply(fields(obj)); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.store.Places.Create(place); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, place.Dict())
}

// searchPlaces filters places by state, city and amenity ids against one storage snapshot.
//
// Missing or non-array keys count as empty lists; non-string ids are skipped.
func (a *API) searchPlaces(w http.ResponseWriter, r *http.Request) {
	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	q := search.Query{
		States:    idList(obj.Get("states")),
		Cities:    idList(obj.Get("cities")),
		Amenities: idList(obj.Get("amenities")),
	}

	ix, err := a.store.Snapshot(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	places := search.Filter(ix, q)
	a.metrics.ObserveSearch(len(places))
	a.logger.Debug("places search", "states", len(q.States), "cities", len(q.Cities), "amenities", len(q.Amenities), "results", len(places))

	writeJSON(w, http.StatusOK, dicts(places))
}

func (a *API) placeAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := a.store.Places.Amenities(mux.Vars(r)["place_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dicts(amenities))
}

// linkAmenity answers 201 for a new link and 200 when the place already had the amenity.
func (a *API) linkAmenity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	created, err := a.store.Places.LinkAmenity(vars["place_id"], vars["amenity_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	amenity, err := a.store.Amenities.Get(vars["amenity_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, amenity.Dict())
}

func (a *API) unlinkAmenity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := a.store.Places.UnlinkAmenity(vars["place_id"], vars["amenity_id"]); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
