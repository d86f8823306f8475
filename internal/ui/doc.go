// Package ui implements an interactive terminal browser using bubbletea's Elm architecture.
//
// The TUI walks the catalog top-down:
//  1. [StateListView] : Browse states
//  2. [CityListView] : Cities of the selected state
//  3. [PlaceListView] : Places of the selected city
//  4. [PlaceDetailView] : Attributes and amenities of one place
//  5. [ExportView] : Per-state export progress and its result
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every list is read from one storage snapshot; "r" reloads it. Export progress flows through a channel from the
// tasks Engine, providing non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, e, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
