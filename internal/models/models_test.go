package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/hbnb/internal/shared"
)

var (
	_ Model = (*State)(nil)
	_ Model = (*City)(nil)
	_ Model = (*Amenity)(nil)
	_ Model = (*Place)(nil)
	_ Model = (*User)(nil)
)

func TestParseKind(t *testing.T) {
	tc := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "State", want: KindState},
		{input: "states", want: KindState},
		{input: "city", want: KindCity},
		{input: "Cities", want: KindCity},
		{input: "amenities", want: KindAmenity},
		{input: " place ", want: KindPlace},
		{input: "users", want: KindUser},
		{input: "review", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrUnknownKind) {
					t.Fatalf("expected ErrUnknownKind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKindPlural(t *testing.T) {
	want := map[Kind]string{
		KindState:   "states",
		KindCity:    "cities",
		KindAmenity: "amenities",
		KindPlace:   "places",
		KindUser:    "users",
	}
	for kind, plural := range want {
		if got := kind.Plural(); got != plural {
			t.Errorf("%v.Plural() = %q, want %q", kind, got, plural)
		}
	}
}

func TestValidate(t *testing.T) {
	lat := 120.0

	tc := []struct {
		name    string
		model   Model
		wantErr error
	}{
		{name: "state ok", model: NewState(0, "California")},
		{name: "state missing name", model: NewState(0, "  "), wantErr: shared.ErrMissingField},
		{name: "city missing state", model: NewCity(0, "", "Fremont"), wantErr: shared.ErrMissingField},
		{name: "city ok", model: NewCity(0, "s1", "Fremont")},
		{name: "amenity missing name", model: NewAmenity(0, ""), wantErr: shared.ErrMissingField},
		{name: "user without password", model: NewUser(0, "a@b.c", "", ""), wantErr: shared.ErrMissingField},
		{name: "place missing user", model: NewPlace(0, "c1", "", PlaceAttrs{Name: "Loft"}), wantErr: shared.ErrMissingField},
		{name: "place negative rooms", model: NewPlace(0, "c1", "u1", PlaceAttrs{Name: "Loft", NumberRooms: -1}), wantErr: shared.ErrInvalidInput},
		{name: "place bad latitude", model: NewPlace(0, "c1", "u1", PlaceAttrs{Name: "Loft", Latitude: &lat}), wantErr: shared.ErrInvalidInput},
		{name: "place ok", model: NewPlace(0, "c1", "u1", PlaceAttrs{Name: "Loft"})},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDict(t *testing.T) {
	t.Run("State", func(t *testing.T) {
		state := NewState(1, "Nevada")
		state.SetID("s1")

		d := state.Dict()
		if d["__class__"] != "State" || d["id"] != "s1" || d["name"] != "Nevada" {
			t.Errorf("unexpected dict: %v", d)
		}
		if _, err := json.Marshal(d); err != nil {
			t.Errorf("dict should marshal: %v", err)
		}
	})

	t.Run("User omits password", func(t *testing.T) {
		user := NewUser(1, "bob@example.com", "Bob", "Dylan")
		if err := user.SetPassword("pwd"); err != nil {
			t.Fatalf("failed to set password: %v", err)
		}

		d := user.Dict()
		if _, ok := d["password"]; ok {
			t.Error("password must not be serialized")
		}
		if d["email"] != "bob@example.com" {
			t.Errorf("expected email, got %v", d["email"])
		}
	})

	t.Run("Place timestamps and nulls", func(t *testing.T) {
		place := NewPlace(1, "c1", "u1", PlaceAttrs{Name: "Loft", PriceByNight: 100})

		out, err := json.Marshal(place.Dict())
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		s := string(out)
		if !strings.Contains(s, `"latitude":null`) {
			t.Errorf("expected null latitude, got %s", s)
		}
		if !strings.Contains(s, `"price_by_night":100`) {
			t.Errorf("expected price_by_night, got %s", s)
		}

		created, _ := place.Dict()["created_at"].(string)
		if len(created) != len(TimeFormat) {
			t.Errorf("expected created_at in %s layout, got %q", TimeFormat, created)
		}
	})
}

func TestUserPassword(t *testing.T) {
	user := NewUser(0, "a@b.c", "", "")
	if err := user.SetPassword("secret"); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}

	if user.PasswordHash() == "secret" {
		t.Error("password must be hashed")
	}
	if !user.CheckPassword("secret") {
		t.Error("expected password to match")
	}
	if user.CheckPassword("other") {
		t.Error("expected wrong password to fail")
	}
	if err := user.SetPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}
