package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/tasks"
)

type fakeSource struct {
	index *search.Index
	err   error
	calls int
}

func (f *fakeSource) Snapshot(ctx context.Context) (*search.Index, error) {
	f.calls++
	return f.index, f.err
}

func testIndex() *search.Index {
	ix := search.NewIndex()
	nevada := models.NewState(1, "Nevada")
	nevada.SetID("s-nv")
	arizona := models.NewState(2, "Arizona")
	arizona.SetID("s-az")
	ix.AddState(nevada)
	ix.AddState(arizona)

	reno := models.NewCity(1, "s-nv", "Reno")
	reno.SetID("c-reno")
	ix.AddCity(reno)

	wifi := models.NewAmenity(1, "Wifi")
	wifi.SetID("a-wifi")
	ix.AddAmenity(wifi)

	lat, lon := 39.5, -119.8
	cabin := models.NewPlace(1, "c-reno", "u1", models.PlaceAttrs{
		Name: "Cabin", PriceByNight: 90, MaxGuest: 4, NumberRooms: 2, Latitude: &lat, Longitude: &lon,
		Description: "Near the river",
	})
	cabin.SetID("p-cabin")
	ix.AddPlace(cabin)
	ix.Link("p-cabin", "a-wifi")
	return ix
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func loaded(t *testing.T, src *fakeSource) *Model {
	t.Helper()
	m := NewModel(context.Background(), src, nil, tasks.BulkExportOpts{})
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	send(t, m, m.Init()())
	return m
}

func TestModelNavigation(t *testing.T) {
	src := &fakeSource{index: testIndex()}
	m := loaded(t, src)

	if m.view != StateListView || m.index == nil {
		t.Fatalf("expected state list after load, got view %d", m.view)
	}
	if got := m.stateList.Items()[0].(stateItem).state.Name(); got != "Arizona" {
		t.Errorf("expected states sorted by name, first is %s", got)
	}

	send(t, m, keyPress("j"))
	send(t, m, keyPress("enter"))
	if m.view != CityListView || m.state.Name() != "Nevada" {
		t.Fatalf("expected Nevada cities, got view %d", m.view)
	}

	send(t, m, keyPress("enter"))
	if m.view != PlaceListView || m.city.Name() != "Reno" {
		t.Fatalf("expected Reno places, got view %d", m.view)
	}

	send(t, m, keyPress("enter"))
	if m.view != PlaceDetailView {
		t.Fatalf("expected detail view, got %d", m.view)
	}
	out := m.View()
	for _, want := range []string{"Cabin", "Reno, Nevada", "$90/night", "Wifi", "Near the river"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected detail to contain %q", want)
		}
	}

	send(t, m, keyPress("esc"))
	send(t, m, keyPress("esc"))
	send(t, m, keyPress("esc"))
	if m.view != StateListView {
		t.Errorf("expected to return to the state list, got %d", m.view)
	}
}

func TestModelReload(t *testing.T) {
	src := &fakeSource{index: testIndex()}
	m := loaded(t, src)

	cmd := send(t, m, keyPress("r"))
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	send(t, m, cmd())
	if src.calls != 2 {
		t.Errorf("expected 2 snapshot loads, got %d", src.calls)
	}
}

func TestModelLoadError(t *testing.T) {
	src := &fakeSource{err: errors.New("database is locked")}
	m := loaded(t, src)

	if !strings.Contains(m.View(), "database is locked") {
		t.Errorf("expected error view, got %q", m.View())
	}

	src.err, src.index = nil, testIndex()
	send(t, m, m.loadSnapshot()())
	if m.err != nil || m.index == nil {
		t.Errorf("expected retry to clear the error, got %v", m.err)
	}
}

func TestExportDisabledWithoutEngine(t *testing.T) {
	m := loaded(t, &fakeSource{index: testIndex()})
	if cmd := send(t, m, keyPress("e")); cmd != nil {
		t.Error("expected no command without an engine")
	}
	if m.view != StateListView {
		t.Errorf("expected to stay on the state list, got %d", m.view)
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, &fakeSource{index: testIndex()})
	cmd := send(t, m, keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
