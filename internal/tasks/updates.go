package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SeedStates Phase = iota
	SeedCities
	SeedAmenities
	SeedUsers
	SeedPlaces
	LoadSnapshot
	ExportState
)

func (p Phase) String() string {
	switch p {
	case SeedStates:
		return "seed_states"
	case SeedCities:
		return "seed_cities"
	case SeedAmenities:
		return "seed_amenities"
	case SeedUsers:
		return "seed_users"
	case SeedPlaces:
		return "seed_places"
	case LoadSnapshot:
		return "load_snapshot"
	case ExportState:
		return "export_state"
	default:
		return ""
	}
}

func seedUpdate(phase Phase, step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, name),
	}
}

func seedFailedUpdate(phase Phase, step, total int, failure SeedFailure) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s %s: %s", step, total, failure.Kind, failure.Name, failure.Error),
		Data:    failure,
	}
}

func snapshotUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadSnapshot,
		Step:    1,
		Total:   1,
		Message: "Loading storage snapshot...",
	}
}

func exportCompletedUpdate(step, total int, res StateExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportState,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d places)", step, total, res.StateName, res.Places),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res StateExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportState,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, res.StateName, res.Error),
		Data:    res,
	}
}
