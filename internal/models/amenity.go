package models

// Amenity is a feature offered by places.
type Amenity struct {
	base
	name string
}

var amenityFields = FieldSet[*Amenity]{
	"name": stringField(func(a *Amenity, v string) error { a.name = v; return nil }),
}

func NewAmenity(sequence int, name string) *Amenity {
	return &Amenity{base: newBase(sequence), name: name}
}

func (a *Amenity) Name() string { return a.name }
func (a *Amenity) Kind() Kind   { return KindAmenity }

func (a *Amenity) Validate() error {
	return requireField("name", a.name)
}

func (a *Amenity) Apply(updates map[string]any) error {
	return amenityFields.Apply(a, updates)
}

func (a *Amenity) Dict() map[string]any {
	d := a.dict(KindAmenity)
	d["name"] = a.name
	return d
}
