package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/hbnb/internal/shared"
)

func TestBasicRouter(t *testing.T) {
	t.Run("MiddlewareOrder", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(tag("first"), tag("second"))
		router.Handle(http.MethodGet, "/items/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42/", nil))

		if got := strings.Join(order, ","); got != "first,second,handler" {
			t.Errorf("expected first,second,handler, got %s", got)
		}
	})

	t.Run("HandlerRoutes", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewAPI(nil, shared.NewLogger(nil), nil))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	out := buf.String()
	for _, want := range []string{"request", "/brew", "418"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got %q", want, out)
		}
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expectError(t, rec, http.StatusInternalServerError, "Internal server error")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestChainRecordsPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	metrics := NewMetrics()

	router := NewBasicRouter()
	router.Use(chain(logger, metrics, shared.ServerConfig{})...)
	router.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	expectError(t, rec, http.StatusInternalServerError, "Internal server error")

	if !strings.Contains(buf.String(), "status=500") {
		t.Errorf("expected access log with status 500, got %q", buf.String())
	}

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(scrape.Body.String(), `path="/boom",status="500"`) {
		t.Errorf("expected a 500 in the request counter, got:\n%s", scrape.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("Disabled", func(t *testing.T) {
		h := NewRateLimiter(0, 0).Middleware(ok)
		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 with limiting disabled, got %d", rec.Code)
			}
		}
	})

	t.Run("Burst", func(t *testing.T) {
		h := NewRateLimiter(0.001, 2).Middleware(ok)
		codes := make([]int, 0, 3)
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}
		if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
			t.Errorf("expected 200,200,429, got %v", codes)
		}
	})
}
