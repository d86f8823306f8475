package models

// City belongs to exactly one [State] and owns places.
type City struct {
	base
	stateID string
	name    string
}

var cityFields = FieldSet[*City]{
	"name": stringField(func(c *City, v string) error { c.name = v; return nil }),
}

// NewCity creates a [City] in the given state.
func NewCity(sequence int, stateID, name string) *City {
	return &City{base: newBase(sequence), stateID: stateID, name: name}
}

func (c *City) Name() string    { return c.name }
func (c *City) StateID() string { return c.stateID }
func (c *City) Kind() Kind      { return KindCity }

// Validate reports a missing name or state.
func (c *City) Validate() error {
	if err := requireField("state_id", c.stateID); err != nil {
		return err
	}
	return requireField("name", c.name)
}

// Apply sets the mutable fields of a city: name. The owning state cannot be changed.
func (c *City) Apply(updates map[string]any) error {
	return cityFields.Apply(c, updates)
}

// Dict returns the serialized form of the city.
func (c *City) Dict() map[string]any {
	d := c.dict(KindCity)
	d["name"] = c.name
	d["state_id"] = c.stateID
	return d
}
