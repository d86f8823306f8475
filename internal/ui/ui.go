package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	StateListView ViewState = iota
	CityListView
	PlaceListView
	PlaceDetailView
	ExportView
)

// Snapshotter loads a consistent read-only view of storage.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*search.Index, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	source       Snapshotter
	engine       *tasks.Engine
	exportOpts   tasks.BulkExportOpts
	width        int
	height       int
	index        *search.Index
	stateList    list.Model
	cityList     list.Model
	placeList    list.Model
	state        *models.State
	city         *models.City
	place        *placeItem
	progressChan chan tasks.ProgressUpdate
	wait         tea.Cmd
	progress     tasks.ProgressUpdate
	result       *tasks.BulkExportResult
	exportErr    error
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model reading from source. A nil engine disables exports.
func NewModel(ctx context.Context, source Snapshotter, engine *tasks.Engine, opts tasks.BulkExportOpts) *Model {
	return &Model{
		ctx:        ctx,
		view:       StateListView,
		source:     source,
		engine:     engine,
		exportOpts: opts,
		stateList:  newList("States", nil),
		cityList:   newList("Cities", nil),
		placeList:  newList("Places", nil),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// Init initializes the TUI by loading a storage snapshot.
func (m *Model) Init() tea.Cmd {
	return m.loadSnapshot()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.filtering() {
			return m.updateLists(msg)
		}
		switch m.view {
		case StateListView:
			return m.handleStateListKeys(msg)
		case CityListView:
			return m.handleCityListKeys(msg)
		case PlaceListView:
			return m.handlePlaceListKeys(msg)
		case PlaceDetailView:
			return m.handleDetailKeys(msg)
		case ExportView:
			return m.handleExportKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSnapshotLoaded:
		data := msg.data.(snapshotLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.index = data.index
		m.view = StateListView
		m.state, m.city, m.place = nil, nil, nil
		m.stateList.SetItems(stateItems(data.index))
		m.stateList.Title = fmt.Sprintf("States (%d)", len(data.index.States()))
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.wait

	case MsgExportComplete:
		data := msg.data.(exportComplete)
		m.result = data.result
		m.exportErr = data.err
		m.progressChan = nil
		m.wait = nil
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}
	if m.index == nil {
		return styles.help.Render("Loading snapshot...")
	}

	switch m.view {
	case StateListView:
		return m.renderList(m.stateList, m.keys.enter, m.keys.refresh, m.keys.export, m.keys.quit)
	case CityListView:
		return m.renderList(m.cityList, m.keys.enter, m.keys.back, m.keys.quit)
	case PlaceListView:
		return m.renderList(m.placeList, m.keys.enter, m.keys.back, m.keys.quit)
	case PlaceDetailView:
		return m.renderDetail()
	case ExportView:
		return m.renderExport()
	default:
		return ""
	}
}

// filtering reports whether the visible list is capturing keys for its filter input.
func (m *Model) filtering() bool {
	switch m.view {
	case StateListView:
		return m.stateList.FilterState() == list.Filtering
	case CityListView:
		return m.cityList.FilterState() == list.Filtering
	case PlaceListView:
		return m.placeList.FilterState() == list.Filtering
	}
	return false
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-8
	if w < 0 || h < 0 {
		return
	}
	m.stateList.SetSize(w, h)
	m.cityList.SetSize(w, h)
	m.placeList.SetSize(w, h)
}

func (m *Model) handleStateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadSnapshot()
	case key.Matches(msg, m.keys.export):
		if m.engine == nil || m.progressChan != nil {
			return m, nil
		}
		m.view = ExportView
		return m, m.startExport()
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.stateList.SelectedItem().(stateItem); ok && m.index != nil {
			m.state = it.state
			m.cityList.SetItems(cityItems(m.index, it.state.ID()))
			m.cityList.Title = fmt.Sprintf("Cities in %s", it.state.Name())
			m.cityList.ResetSelected()
			m.view = CityListView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.stateList, cmd = m.stateList.Update(msg)
	return m, cmd
}

func (m *Model) handleCityListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = StateListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.cityList.SelectedItem().(cityItem); ok {
			m.city = it.city
			m.placeList.SetItems(placeItems(m.index, it.city.ID()))
			m.placeList.Title = fmt.Sprintf("Places in %s", it.city.Name())
			m.placeList.ResetSelected()
			m.view = PlaceListView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.cityList, cmd = m.cityList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaceListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CityListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.placeList.SelectedItem().(placeItem); ok {
			m.place = &it
			m.view = PlaceDetailView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.placeList, cmd = m.placeList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaceListView
	}
	return m, nil
}

func (m *Model) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.progressChan == nil {
			m.view = StateListView
		}
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case StateListView:
		m.stateList, cmd = m.stateList.Update(msg)
	case CityListView:
		m.cityList, cmd = m.cityList.Update(msg)
	case PlaceListView:
		m.placeList, cmd = m.placeList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		ix, err := m.source.Snapshot(m.ctx)
		return snapshotLoadedMsg(ix, err)
	}
}

func (m *Model) startExport() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan exportComplete, 1)
	m.progressChan = progress
	m.result, m.exportErr = nil, nil
	m.progress = tasks.ProgressUpdate{}

	go func() {
		result, err := m.engine.BulkExport(m.ctx, progress, m.exportOpts)
		done <- exportComplete{result, err}
		close(progress)
	}()

	m.wait = waitForProgress(progress, done)
	return m.wait
}

// waitForProgress yields the next progress update, or the completion message once progress is closed.
func waitForProgress(progress <-chan tasks.ProgressUpdate, done <-chan exportComplete) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			res := <-done
			return exportCompleteMsg(res.result, res.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderList(l list.Model, bindings ...key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(bindings))
}

func (m *Model) renderDetail() string {
	p := m.place.place
	a := p.Attrs()

	var b strings.Builder
	b.WriteString(styles.title.Render(p.Name()))
	b.WriteString("\n")
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), value)
	}
	if m.state != nil && m.city != nil {
		row("Location", fmt.Sprintf("%s, %s", m.city.Name(), m.state.Name()))
	}
	row("Price", fmt.Sprintf("$%d/night", a.PriceByNight))
	row("Guests", fmt.Sprintf("%d", a.MaxGuest))
	row("Rooms", fmt.Sprintf("%d", a.NumberRooms))
	row("Bathrooms", fmt.Sprintf("%d", a.NumberBathrooms))
	if a.Latitude != nil && a.Longitude != nil {
		row("Coordinates", fmt.Sprintf("%.4f, %.4f", *a.Latitude, *a.Longitude))
	}
	if len(m.place.amenities) > 0 {
		row("Amenities", strings.Join(m.place.amenities, ", "))
	} else {
		row("Amenities", styles.help.Render("none"))
	}
	if a.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Description)
	}

	fmt.Fprintf(&b, "\n%s", m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	return b.String()
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting places by state")

	if m.progressChan != nil {
		var phase string
		switch m.progress.Phase {
		case tasks.LoadSnapshot:
			phase = "Loading snapshot..."
		case tasks.ExportState:
			phase = fmt.Sprintf("Writing listings (%d/%d)", m.progress.Step, m.progress.Total)
		default:
			phase = "Starting..."
		}
		return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	if m.exportErr != nil {
		return fmt.Sprintf("%s\n\n%s\n\n%s", title, styles.err.Render(fmt.Sprintf("Export failed: %v", m.exportErr)), helpView)
	}
	if m.result == nil {
		return fmt.Sprintf("%s\n\n%s", title, helpView)
	}

	summary := styles.ok.Render(fmt.Sprintf("✓ Exported %d/%d states to %s",
		m.result.SuccessfulExports, m.result.TotalStates, m.result.OutputDirectory))

	var failed string
	if m.result.FailedExports > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("%d exports failed:", m.result.FailedExports))
		for _, res := range m.result.Results {
			if !res.Success {
				failed += fmt.Sprintf("\n  • %s: %s", res.StateName, res.Error)
			}
		}
	}

	return fmt.Sprintf("%s\n\n%s%s\n\n%s", title, summary, failed, helpView)
}
