package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortuned-dev/fortuned/pkg/history"

	// Register the default-registry metrics that /metrics is expected
	// to expose, as the production binary does.
	_ "github.com/fortuned-dev/fortuned/pkg/observability"
)

type staticCaps bool

func (c staticCaps) CanFormat() bool { return bool(c) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(caps Capabilities, hist *history.Ring) *httptest.Server {
	s := New(caps, hist, Config{
		Port:           0,
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}, discardLogger())
	return httptest.NewServer(s.Handler())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(staticCaps(true), nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok\n" {
		t.Errorf("body = %q, want \"ok\\n\"", body)
	}
}

func TestStatusReportsCapability(t *testing.T) {
	ring := history.New(10)
	ring.Record(history.Entry{Content: "hello", Mode: "plain", ServedAt: time.Now()})

	ts := newTestServer(staticCaps(false), ring)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()

	var st struct {
		Status             string `json:"status"`
		FormatterAvailable bool   `json:"formatter_available"`
		HistorySize        int    `json:"history_size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decoding status: %v", err)
	}

	if st.Status != "ok" {
		t.Errorf("status = %q, want \"ok\"", st.Status)
	}
	if st.FormatterAvailable {
		t.Error("formatter_available = true, want false")
	}
	if st.HistorySize != 1 {
		t.Errorf("history_size = %d, want 1", st.HistorySize)
	}
}

func TestRecentReturnsEntries(t *testing.T) {
	ring := history.New(10)
	ring.Record(history.Entry{Content: "older", Mode: "plain", ServedAt: time.Now()})
	ring.Record(history.Entry{Content: "newer", Mode: "formatted", ServedAt: time.Now()})

	ts := newTestServer(staticCaps(true), ring)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/recent?limit=1")
	if err != nil {
		t.Fatalf("GET /recent: %v", err)
	}
	defer resp.Body.Close()

	var entries []history.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Content != "newer" {
		t.Errorf("entry content = %q, want newest first", entries[0].Content)
	}
}

func TestRecentWithoutHistory(t *testing.T) {
	ts := newTestServer(staticCaps(true), nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/recent")
	if err != nil {
		t.Fatalf("GET /recent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", resp.StatusCode)
	}
}

func TestRecentRejectsBadLimit(t *testing.T) {
	ts := newTestServer(staticCaps(true), history.New(10))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/recent?limit=nope")
	if err != nil {
		t.Fatalf("GET /recent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad limit", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(staticCaps(true), nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "fortuned_response_bytes_total") {
		t.Error("metrics output does not expose fortuned_response_bytes_total")
	}
}
