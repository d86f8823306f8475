package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/tidwall/gjson"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/repositories"
	"github.com/desertthunder/hbnb/internal/shared"
)

// API serves the JSON endpoints under [APIPrefix].
type API struct {
	store   *repositories.Store
	logger  *log.Logger
	metrics *Metrics
}

// NewAPI creates an [API] over store. metrics may be nil.
func NewAPI(store *repositories.Store, logger *log.Logger, metrics *Metrics) *API {
	return &API{store: store, logger: logger, metrics: metrics}
}

// Routes implements [Handler].
func (a *API) Routes() []Route {
	const (
		get  = http.MethodGet
		post = http.MethodPost
		put  = http.MethodPut
		del  = http.MethodDelete
	)
	p := func(path string) string { return APIPrefix + path }

	return []Route{
		{get, p("/status"), a.status},
		{get, p("/stats"), a.stats},

		{get, p("/states"), a.list(models.KindState)},
		{post, p("/states"), a.createState},
		{get, p("/states/{state_id}"), a.get(models.KindState, "state_id")},
		{put, p("/states/{state_id}"), a.update(models.KindState, "state_id")},
		{del, p("/states/{state_id}"), a.remove(models.KindState, "state_id")},

		{get, p("/states/{state_id}/cities"), a.citiesOfState},
		{post, p("/states/{state_id}/cities"), a.createCity},
		{get, p("/cities/{city_id}"), a.get(models.KindCity, "city_id")},
		{put, p("/cities/{city_id}"), a.update(models.KindCity, "city_id")},
		{del, p("/cities/{city_id}"), a.remove(models.KindCity, "city_id")},

		{get, p("/amenities"), a.list(models.KindAmenity)},
		{post, p("/amenities"), a.createAmenity},
		{get, p("/amenities/{amenity_id}"), a.get(models.KindAmenity, "amenity_id")},
		{put, p("/amenities/{amenity_id}"), a.update(models.KindAmenity, "amenity_id")},
		{del, p("/amenities/{amenity_id}"), a.remove(models.KindAmenity, "amenity_id")},

		{get, p("/users"), a.list(models.KindUser)},
		{post, p("/users"), a.createUser},
		{get, p("/users/{user_id}"), a.get(models.KindUser, "user_id")},
		{put, p("/users/{user_id}"), a.update(models.KindUser, "user_id")},
		{del, p("/users/{user_id}"), a.remove(models.KindUser, "user_id")},

		{get, p("/cities/{city_id}/places"), a.placesOfCity},
		{post, p("/cities/{city_id}/places"), a.createPlace},
		{get, p("/places/{place_id}"), a.get(models.KindPlace, "place_id")},
		{put, p("/places/{place_id}"), a.update(models.KindPlace, "place_id")},
		{del, p("/places/{place_id}"), a.remove(models.KindPlace, "place_id")},
		{post, p("/places_search"), a.searchPlaces},

		{get, p("/places/{place_id}/amenities"), a.placeAmenities},
		{post, p("/places/{place_id}/amenities/{amenity_id}"), a.linkAmenity},
		{del, p("/places/{place_id}/amenities/{amenity_id}"), a.unlinkAmenity},
	}
}

// fail maps err onto a JSON error response. Unexpected errors are logged and reported as 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrNotLinked):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, shared.ErrNotJSON):
		writeError(w, http.StatusBadRequest, "Not a JSON")
	case errors.Is(err, shared.ErrBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// require writes "Missing <key>" and reports false when obj has no key.
func require(w http.ResponseWriter, obj gjson.Result, keys ...string) bool {
	for _, key := range keys {
		if !obj.Get(key).Exists() {
			writeError(w, http.StatusBadRequest, "Missing "+key)
			return false
		}
	}
	return true
}

// requireValue is [require] that also treats null and empty strings as missing.
func requireValue(w http.ResponseWriter, obj gjson.Result, keys ...string) bool {
	for _, key := range keys {
		v := obj.Get(key)
		if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
			writeError(w, http.StatusBadRequest, "Missing "+key)
			return false
		}
	}
	return true
}

func (a *API) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.store.Stats()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) list(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := a.store.List(kind)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, dicts(items))
	}
}

func (a *API) get(kind models.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := a.store.Get(kind, mux.Vars(r)[param])
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m.Dict())
	}
}

func (a *API) remove(kind models.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.store.Delete(kind, mux.Vars(r)[param]); err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, struct{}{})
	}
}

// update applies the allow-listed keys of the body to an existing record.
func (a *API) update(kind models.Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := a.store.Get(kind, mux.Vars(r)[param])
		if err != nil {
			a.fail(w, r, err)
			return
		}

		obj, err := readObject(w, r)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if err := m.Apply(fields(obj)); err != nil {
			a.fail(w, r, err)
			return
		}
		if err := a.store.Save(m); err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m.Dict())
	}
}

func (a *API) createState(w http.ResponseWriter, r *http.Request) {
	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !require(w, obj, "name") {
		return
	}

	state := models.NewState(0, "")
	if err := state.Apply(fields(obj)); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.store.States.Create(state); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, state.Dict())
}

func (a *API) citiesOfState(w http.ResponseWriter, r *http.Request) {
	cities, err := a.store.Cities.ListByState(mux.Vars(r)["state_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dicts(cities))
}

func (a *API) createCity(w http.ResponseWriter, r *http.Request) {
	state, err := a.store.States.Get(mux.Vars(r)["state_id"])
	if err != nil {
		a.fail(w, r, err)
		return
	}

	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !require(w, obj, "name") {
		return
	}

	city := models.NewCity(0, state.ID(), "")
	if err := city.Apply(fields(obj)); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.store.Cities.Create(city); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, city.Dict())
}

func (a *API) createAmenity(w http.ResponseWriter, r *http.Request) {
	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !require(w, obj, "name") {
		return
	}

	amenity := models.NewAmenity(0, "")
	if err := amenity.Apply(fields(obj)); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.store.Amenities.Create(amenity); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, amenity.Dict())
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	obj, err := readObject(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !require(w, obj, "email", "password") {
		return
	}

	user := models.NewUser(0, obj.Get("email").String(), "", "")
	if err := user.Apply(fields(obj)); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.store.Users.Create(user); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user.Dict())
}
