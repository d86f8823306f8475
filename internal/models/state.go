package models

// State is a top-level region. Cities reference it through their state_id.
type State struct {
	base
	name string
}

var stateFields = FieldSet[*State]{
	"name": stringField(func(s *State, v string) error { s.name = v; return nil }),
}

// NewState creates a [State] with creation timestamps set to now.
func NewState(sequence int, name string) *State {
	return &State{base: newBase(sequence), name: name}
}

func (s *State) Name() string { return s.name }
func (s *State) Kind() Kind   { return KindState }

// Validate reports a missing name.
func (s *State) Validate() error {
	return requireField("name", s.name)
}

// Apply sets the mutable fields of a state: name.
func (s *State) Apply(updates map[string]any) error {
	return stateFields.Apply(s, updates)
}

// Dict returns the serialized form of the state.
func (s *State) Dict() map[string]any {
	d := s.dict(KindState)
	d["name"] = s.name
	return d
}
