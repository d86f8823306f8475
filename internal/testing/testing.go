// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/hbnb/internal/search"
)

// MockService is a test double for [services.Service]. Zero values answer "OK" with empty results.
type MockService struct {
	StatusValue string
	StatsValue  map[string]int
	Places      []map[string]any
	Err         error

	LastQuery search.Query
}

func (m *MockService) Status(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.StatusValue == "" {
		return "OK", nil
	}
	return m.StatusValue, nil
}

func (m *MockService) Stats(ctx context.Context) (map[string]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.StatsValue == nil {
		return map[string]int{}, nil
	}
	return m.StatsValue, nil
}

func (m *MockService) SearchPlaces(ctx context.Context, q search.Query) ([]map[string]any, error) {
	m.LastQuery = q
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Places, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
