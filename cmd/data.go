package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/hbnb/internal/formatter"
	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/shared"
	"github.com/desertthunder/hbnb/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Seed imports a JSON fixture of states, cities, amenities, users and places.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file is required", shared.ErrMissingArgument)
	}

	fixture, err := tasks.LoadFixture(path)
	if err != nil {
		return err
	}

	r.logger.Info("seeding storage", "file", path)
	progress, done := r.printProgress()
	result, err := r.engine.Seed(ctx, progress, fixture)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("seed interrupted: %w", err)
	}

	r.writePlainln("Seeded %d states, %d cities, %d amenities, %d users, %d places (%d amenity links)",
		result.States, result.Cities, result.Amenities, result.Users, result.Places, result.Links)
	if len(result.Failures) > 0 {
		r.logger.Warn("some fixture records were skipped", "count", len(result.Failures))
		r.writePlain("%d record(s) skipped:\n", len(result.Failures))
		for _, f := range result.Failures {
			r.writePlain("  • %s %q: %s\n", f.Kind, f.Name, f.Error)
		}
	}
	return nil
}

// Export writes one listing per state and a manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	progress, done := r.printProgress()
	result, err := r.engine.BulkExport(ctx, progress, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d states to %s", result.SuccessfulExports, result.TotalStates, result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	if result.FailedExports > 0 {
		return fmt.Errorf("%d state export(s) failed", result.FailedExports)
	}
	return nil
}

// printProgress prints updates from the returned channel until it is closed, then signals done.
func (r *Runner) printProgress() (chan tasks.ProgressUpdate, <-chan struct{}) {
	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Debug("progress", "phase", u.Phase, "step", u.Step, "total", u.Total)
			r.writePlain("%s\n", u.Message)
		}
	}()
	return progress, done
}

// List prints every live record of a kind, in creation order.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	kind, err := models.ParseKind(cmd.StringArg("kind"))
	if err != nil {
		return err
	}

	items, err := r.store.List(kind)
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(items))
	for _, m := range items {
		out = append(out, m.Dict())
	}
	return r.writeJSON(out, !cmd.Bool("compact"))
}

// Get prints one record.
func (r *Runner) Get(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	kind, err := models.ParseKind(cmd.StringArg("kind"))
	if err != nil {
		return err
	}
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	m, err := r.store.Get(kind, id)
	if err != nil {
		return err
	}
	return r.writeJSON(m.Dict(), !cmd.Bool("compact"))
}

// Search runs the places filter against a local storage snapshot.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	q := queryFromFlags(cmd)
	ix, err := r.store.Snapshot(ctx)
	if err != nil {
		return err
	}

	places := search.Filter(ix, q)
	r.logger.Debug("search", "states", len(q.States), "cities", len(q.Cities), "amenities", len(q.Amenities), "results", len(places))

	data, err := formatter.Format(formatter.NewListing("Search results", places, ix), cmd.String("format"))
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// queryFromFlags reads repeatable --state, --city and --amenity flags. Each value may also be comma separated.
func queryFromFlags(cmd *cli.Command) search.Query {
	return search.Query{
		States:    splitIDs(cmd.StringSlice("state")),
		Cities:    splitIDs(cmd.StringSlice("city")),
		Amenities: splitIDs(cmd.StringSlice("amenity")),
	}
}

func splitIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
