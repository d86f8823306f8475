package models

import (
	"fmt"

	"github.com/desertthunder/hbnb/internal/shared"
)

// PlaceAttrs holds the descriptive attributes of a [Place].
type PlaceAttrs struct {
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        *float64
	Longitude       *float64
}

// Place is a listing in a [City], owned by a [User]. Its amenities live in the place_amenity association.
type Place struct {
	base
	cityID string
	userID string
	attrs  PlaceAttrs
}

var placeFields = FieldSet[*Place]{
	"name":             stringField(func(p *Place, v string) error { p.attrs.Name = v; return nil }),
	"description":      stringField(func(p *Place, v string) error { p.attrs.Description = v; return nil }),
	"number_rooms":     intField(func(p *Place, v int) { p.attrs.NumberRooms = v }),
	"number_bathrooms": intField(func(p *Place, v int) { p.attrs.NumberBathrooms = v }),
	"max_guest":        intField(func(p *Place, v int) { p.attrs.MaxGuest = v }),
	"price_by_night":   intField(func(p *Place, v int) { p.attrs.PriceByNight = v }),
	"latitude":         floatField(func(p *Place, v *float64) { p.attrs.Latitude = v }),
	"longitude":        floatField(func(p *Place, v *float64) { p.attrs.Longitude = v }),
}

// NewPlace creates a [Place] in cityID owned by userID.
func NewPlace(sequence int, cityID, userID string, attrs PlaceAttrs) *Place {
	return &Place{base: newBase(sequence), cityID: cityID, userID: userID, attrs: attrs}
}

func (p *Place) Name() string      { return p.attrs.Name }
func (p *Place) CityID() string    { return p.cityID }
func (p *Place) UserID() string    { return p.userID }
func (p *Place) Attrs() PlaceAttrs { return p.attrs }
func (p *Place) Kind() Kind        { return KindPlace }

// Validate reports missing references or name, negative counts and out of range coordinates.
func (p *Place) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"city_id", p.cityID},
		{"user_id", p.userID},
		{"name", p.attrs.Name},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return err
		}
	}

	if p.attrs.NumberRooms < 0 || p.attrs.NumberBathrooms < 0 || p.attrs.MaxGuest < 0 || p.attrs.PriceByNight < 0 {
		return fmt.Errorf("%w: counts and price must not be negative", shared.ErrInvalidInput)
	}
	if lat := p.attrs.Latitude; lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("%w: latitude %v out of range", shared.ErrInvalidInput, *lat)
	}
	if lon := p.attrs.Longitude; lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("%w: longitude %v out of range", shared.ErrInvalidInput, *lon)
	}
	return nil
}

// Apply sets the mutable fields of a place. The city and owner are fixed.
func (p *Place) Apply(updates map[string]any) error {
	return placeFields.Apply(p, updates)
}

// Dict returns the serialized form of the place. Unset coordinates serialize as null.
func (p *Place) Dict() map[string]any {
	d := p.dict(KindPlace)
	d["city_id"] = p.cityID
	d["user_id"] = p.userID
	d["name"] = p.attrs.Name
	d["description"] = p.attrs.Description
	d["number_rooms"] = p.attrs.NumberRooms
	d["number_bathrooms"] = p.attrs.NumberBathrooms
	d["max_guest"] = p.attrs.MaxGuest
	d["price_by_night"] = p.attrs.PriceByNight
	d["latitude"] = p.attrs.Latitude
	d["longitude"] = p.attrs.Longitude
	return d
}
