package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertthunder/hbnb/internal/services"
	"github.com/desertthunder/hbnb/internal/shared"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
)

// APIStatus checks that a server is up.
func (r *Runner) APIStatus(ctx context.Context, cmd *cli.Command) error {
	api := r.client(cmd)
	r.logger.Info("GET /status", "api", api.Name())

	status, err := api.Status(ctx)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{"status": status}, false)
	}
	return r.writePlain("✓ %s is %s\n", api.Name(), status)
}

// APIStats prints the entity counts reported by a server.
func (r *Runner) APIStats(ctx context.Context, cmd *cli.Command) error {
	api := r.client(cmd)
	stats, err := api.Stats(ctx)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r.writePlainHeader("Stats: " + api.Name())
	for _, k := range keys {
		r.writePlain("%-10s %d\n", k, stats[k])
	}
	return nil
}

// APISearch runs places_search on a server.
func (r *Runner) APISearch(ctx context.Context, cmd *cli.Command) error {
	q := queryFromFlags(cmd)
	api := r.client(cmd)
	r.logger.Info("POST /places_search", "api", api.Name())

	places, err := api.SearchPlaces(ctx, q)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(places, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d place(s)", len(places)))
	for i, p := range places {
		r.writePlain("%d. %v ($%v/night) %v\n", i+1, p["name"], p["price_by_night"], p["id"])
	}
	return nil
}

// APIGet makes a direct GET request and prints the body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	client, err := r.rawAPI(cmd)
	if err != nil {
		return err
	}

	path := cmd.StringArg("path")
	r.logger.Info("GET request", "path", path)

	resp, err := client.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, cmd.Bool("pretty"))
}

// APIPost makes a direct POST request with a JSON body and prints the response.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	client, err := r.rawAPI(cmd)
	if err != nil {
		return err
	}

	path := cmd.StringArg("path")
	data := cmd.String("data")
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}
	if !gjson.Valid(data) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	r.logger.Info("POST request", "path", path)
	resp, err := client.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, true)
}

// client returns the API client, pointed at --url when it is set.
func (r *Runner) client(cmd *cli.Command) services.Service {
	if url := cmd.String("url"); url != "" {
		return services.NewAPIService(url, r.httpClient)
	}
	return r.api
}

func (r *Runner) rawAPI(cmd *cli.Command) (*services.APIService, error) {
	client, ok := r.client(cmd).(*services.APIService)
	if !ok {
		return nil, fmt.Errorf("%w: raw requests need an HTTP client", shared.ErrServiceUnavailable)
	}
	return client, nil
}

func (r *Runner) writeResponse(resp *services.APIResponse, pretty bool) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}
	if _, err := r.output.Write(append(resp.Body, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
