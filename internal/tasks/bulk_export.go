package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/desertthunder/hbnb/internal/formatter"
	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for per-state place exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, md, text
	OutputDir  string  // Base output directory (default: hbnb_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Files written per second; 0 disables limiting
}

// StateExportResult reports the export of one state's places.
type StateExportResult struct {
	StateID   string `json:"state_id"`
	StateName string `json:"state_name"`
	Places    int    `json:"places"`
	File      string `json:"file,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BulkExportResult summarizes a [Engine.BulkExport] run. It is also written as the manifest.
type BulkExportResult struct {
	Format            string              `json:"format"`
	TotalStates       int                 `json:"total_states"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"-"`
	Results           []StateExportResult `json:"results"`
}

type stateExportJob struct {
	state  *models.State
	places []*models.Place
}

// BulkExport writes one listing file per state with a worker pool, then a manifest of the results.
//
// All listings come from a single storage snapshot. Each state's places are those the search filter returns
// for that state alone, so the files follow the same ordering as places_search.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "json"
	}
	if _, err := formatter.Format(formatter.NewListing("", nil, nil), opts.Format); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("hbnb_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 16 {
		opts.NumWorkers = 16
	}

	e.sendProgress(prog, snapshotUpdate())
	ix, err := e.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	states := ix.States()
	result := &BulkExportResult{
		Format:          opts.Format,
		TotalStates:     len(states),
		OutputDirectory: opts.OutputDir,
		Results:         make([]StateExportResult, 0, len(states)),
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	jobs := make(chan stateExportJob, len(states))
	results := make(chan StateExportResult, len(states))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, ix, limiter, jobs, results, opts)
	}

	for _, s := range states {
		jobs <- stateExportJob{state: s, places: search.Filter(ix, search.Query{States: []string{s.ID()}})}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(states), res))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(states), res))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes the listings of the jobs it receives until the channel closes or ctx is cancelled.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	ix *search.Index,
	limiter *rate.Limiter,
	jobs <-chan stateExportJob,
	results chan<- StateExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}
		results <- exportState(ix, job, opts)
	}
}

func exportState(ix *search.Index, j stateExportJob, opts BulkExportOpts) StateExportResult {
	res := StateExportResult{
		StateID:   j.state.ID(),
		StateName: j.state.Name(),
		Places:    len(j.places),
	}

	listing := formatter.NewListing(j.state.Name(), j.places, ix)
	path := filepath.Join(opts.OutputDir, exportFileName(j.state))
	file, err := formatter.WriteExport(listing, opts.Format, path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.File = file
	res.Success = true
	return res
}

// exportFileName builds "<slug>_<id prefix>" so states sharing a name do not collide.
func exportFileName(s *models.State) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == ' ' || r == '-' || r == '_':
			return '_'
		}
		return -1
	}, s.Name())
	if slug == "" {
		slug = "state"
	}
	id := s.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return slug + "_" + id
}
