package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/shared"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the API root a local `hbnb serve` listens on.
const DefaultBaseURL = "http://localhost:5001/api/v1"

// APIService makes HTTP requests to the HBnB API. It implements [Service].
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new API client rooted at baseURL (including the /api/v1 prefix).
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil for a 2xx response, otherwise an error wrapping [shared.ErrAPIRequest].
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	msg := string(r.Body)
	if r.IsJSON {
		if e := gjson.GetBytes(r.Body, "error"); e.Exists() {
			msg = e.String()
		}
	}
	return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, r.StatusCode, msg)
}

// Name returns the base URL.
func (a *APIService) Name() string { return a.baseURL }

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

// Put performs a PUT request with the given JSON data and returns the raw response.
func (a *APIService) Put(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPut, path, data)
}

// Delete performs a DELETE request and returns the raw response.
func (a *APIService) Delete(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodDelete, path, nil)
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}
	if len(bytes.TrimSpace(raw)) > 0 && gjson.ValidBytes(raw) {
		apiResp.IsJSON = true
		apiResp.JSONData = gjson.ParseBytes(raw).Value()
	}

	return apiResp, nil
}

// getJSON sends a request and returns the parsed body of a successful JSON response.
func (a *APIService) getJSON(ctx context.Context, method, path string, data []byte) (gjson.Result, error) {
	resp, err := a.do(ctx, method, path, data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(); err != nil {
		return gjson.Result{}, err
	}
	if !resp.IsJSON {
		return gjson.Result{}, fmt.Errorf("%w: %s %s returned a non-JSON body", shared.ErrAPIRequest, method, path)
	}
	return gjson.ParseBytes(resp.Body), nil
}

// Status fetches GET /status.
func (a *APIService) Status(ctx context.Context) (string, error) {
	res, err := a.getJSON(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return "", err
	}
	return res.Get("status").String(), nil
}

// Stats fetches GET /stats.
func (a *APIService) Stats(ctx context.Context) (map[string]int, error) {
	res, err := a.getJSON(ctx, http.MethodGet, "/stats", nil)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int)
	res.ForEach(func(key, value gjson.Result) bool {
		stats[key.String()] = int(value.Int())
		return true
	})
	return stats, nil
}

// SearchPlaces posts q to /places_search.
func (a *APIService) SearchPlaces(ctx context.Context, q search.Query) ([]map[string]any, error) {
	body, err := shared.MarshalJSON(searchBody{
		States:    nonNil(q.States),
		Cities:    nonNil(q.Cities),
		Amenities: nonNil(q.Amenities),
	}, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := a.getJSON(ctx, http.MethodPost, "/places_search", body)
	if err != nil {
		return nil, err
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: places_search returned %s", shared.ErrAPIRequest, res.Type)
	}

	places := make([]map[string]any, 0, len(res.Array()))
	for _, item := range res.Array() {
		if m, ok := item.Value().(map[string]any); ok {
			places = append(places, m)
		}
	}
	return places, nil
}

type searchBody struct {
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
	Amenities []string `json:"amenities"`
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
