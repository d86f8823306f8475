package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// readObject returns the request body when it is a JSON object and [shared.ErrNotJSON] otherwise.
// Bodies over maxBodyBytes yield [shared.ErrBodyTooLarge].
func readObject(w http.ResponseWriter, r *http.Request) (gjson.Result, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return gjson.Result{}, shared.ErrBodyTooLarge
		}
		return gjson.Result{}, fmt.Errorf("failed to read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, shared.ErrNotJSON
	}

	obj := gjson.ParseBytes(body)
	if !obj.IsObject() {
		return gjson.Result{}, shared.ErrNotJSON
	}
	return obj, nil
}

// fields decodes an object into the generic form accepted by [models.Model.Apply].
func fields(obj gjson.Result) map[string]any {
	m, _ := obj.Value().(map[string]any)
	return m
}

// idList returns the string elements of an array value. Anything else yields nil.
func idList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var ids []string
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			ids = append(ids, item.Str)
		}
		return true
	})
	return ids
}

func dicts[T models.Model](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Dict())
	}
	return out
}
