package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/asselect/internal/fetcher"
	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/openair"
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/store"
	"github.com/sells-group/asselect/internal/yaixm"
)

const datasetJSON = `{
  "airspace": [
    {
      "id": "bigtown",
      "name": "BIGTOWN",
      "type": "CTR",
      "class": "D",
      "geometry": [
        {
          "id": "bigtown-1",
          "lower": "SFC",
          "upper": "3500 ft",
          "boundary": [{"line": ["510000N 0010000W", "510000N 0000000E", "503000N 0000000E"]}]
        }
      ]
    },
    {
      "name": "HILLTOP",
      "type": "OTHER",
      "localtype": "GLIDER",
      "geometry": [{"lower": "SFC", "upper": "2000 ft", "boundary": [{"circle": {"radius": "2 nm", "centre": "520000N 0010000W"}}]}]
    }
  ],
  "rat": [
    {
      "name": "AIRSHOW",
      "type": "OTHER",
      "localtype": "RAT",
      "geometry": [{"lower": "SFC", "upper": "FL60", "boundary": [{"circle": {"radius": "3 nm", "centre": "510000N 0010000W"}}]}]
    }
  ],
  "loa": [{"name": "BIGTOWN LOA", "areas": []}],
  "service": [{"callsign": "BIGTOWN APPROACH", "frequency": 120.5, "controls": ["bigtown"]}],
  "release": {"airac_date": "2026-10-01T00:00:00Z"}
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yaixm.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T, st store.Store) (*Server, string) {
	t.Helper()
	path := writeDataset(t, datasetJSON)
	srv := New(Options{
		Source:     path,
		DatasetTTL: time.Hour,
		Opener:     fetcher.NewOpener(fetcher.Options{}),
		Store:      st,
	})
	return srv, path
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestNames(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	tests := []struct {
		name       string
		kind       string
		wantStatus int
		want       []string
	}{
		{name: "loa", kind: "loa", wantStatus: http.StatusOK, want: []string{"BIGTOWN LOA"}},
		{name: "rat", kind: "rat", wantStatus: http.StatusOK, want: []string{"AIRSHOW"}},
		{name: "gliding", kind: "gliding", wantStatus: http.StatusOK, want: []string{"HILLTOP"}},
		{name: "empty wave list", kind: "wave", wantStatus: http.StatusOK, want: []string{}},
		{name: "unknown kind", kind: "runways", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/names/"+tt.kind, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.want == nil {
				return
			}
			var got []string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAir_MatchesRender(t *testing.T) {
	srv, path := newTestServer(t, nil)

	body := `{"options": {"radio": true, "max_level": 100, "format": "openair"}, "rat": ["AIRSHOW"]}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=openair.txt", rec.Header().Get("Content-Disposition"))

	ds, err := yaixm.LoadFile(path)
	require.NoError(t, err)
	st := settings.Default()
	st.Options.Radio = true
	st.Options.MaxLevel = 100
	st.RAT = []string{"AIRSHOW"}
	want, err := openair.Render(ds, st)
	require.NoError(t, err)

	assert.Equal(t, want, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "AN AIRSHOW")
	assert.Contains(t, rec.Body.String(), "AF 120.500")
}

func TestOpenAir_EmptyBodyUsesDefaults(t *testing.T) {
	srv, path := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	ds, err := yaixm.LoadFile(path)
	require.NoError(t, err)
	want, err := openair.Render(ds, settings.Default())
	require.NoError(t, err)
	assert.Equal(t, want, rec.Body.String())
}

func TestOpenAir_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantErr    string
	}{
		{name: "invalid json", target: "/openair", body: `{"options":`, wantStatus: http.StatusBadRequest, wantErr: "decode settings"},
		{name: "unknown format", target: "/openair", body: `{"options": {"format": "kml"}}`, wantStatus: http.StatusBadRequest, wantErr: "unknown format"},
		{name: "profile without store", target: "/openair?profile=club", wantStatus: http.StatusBadRequest, wantErr: "profiles are not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}

func TestOpenAir_ProfileAndRunRecorded(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	custom := settings.Default()
	custom.Airspace.Gliding = settings.Gliding
	_, err := st.SaveProfile(ctx, "club", custom)
	require.NoError(t, err)

	srv, path := newTestServer(t, st)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair?profile=club", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "AN HILLTOP")

	runs, err := st.ListRuns(ctx, store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "club", runs[0].Profile)
	assert.Equal(t, path, runs[0].Source)
	assert.Equal(t, model.RunStatusComplete, runs[0].Status)
	assert.Equal(t, "2026-10-01T00:00:00Z", runs[0].AIRAC)
	assert.Equal(t, len(rec.Body.String()), runs[0].Bytes)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair?profile=nobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenAir_DatasetUnavailable(t *testing.T) {
	srv := New(Options{
		Source: filepath.Join(t.TempDir(), "missing.json"),
		Opener: fetcher.NewOpener(fetcher.Options{}),
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().DatasetLoads.WithLabelValues("error")))
}

func TestConversionMetrics(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openair", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	m := srv.Metrics()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Conversions.WithLabelValues("openair", "complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("loaded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `asselect_conversions_total{format="openair",status="complete"} 2`)
	assert.Contains(t, rec.Body.String(), "asselect_conversion_duration_seconds_count 2")
}

func TestDatasetCache_Revalidates(t *testing.T) {
	path := writeDataset(t, datasetJSON)
	m := NewMetrics()
	c := newDatasetCache(fetcher.NewOpener(fetcher.Options{}), m, 10*time.Millisecond)
	ctx := context.Background()

	first, err := c.Get(ctx, path)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	second, err := c.Get(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("unchanged")))

	changed := strings.Replace(datasetJSON, `"BIGTOWN LOA"`, `"BIGTOWN LOA 2"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))
	time.Sleep(30 * time.Millisecond)

	third, err := c.Get(ctx, path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, []string{"BIGTOWN LOA 2"}, yaixm.LOANames(third))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("loaded")))
}

func TestDatasetCache_ServesStaleOnError(t *testing.T) {
	path := writeDataset(t, datasetJSON)
	m := NewMetrics()
	c := newDatasetCache(fetcher.NewOpener(fetcher.Options{}), m, 10*time.Millisecond)
	ctx := context.Background()

	first, err := c.Get(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	time.Sleep(30 * time.Millisecond)

	second, err := c.Get(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("error")))
}

func TestDatasetCache_ServesStaleOnInvalidRefresh(t *testing.T) {
	path := writeDataset(t, datasetJSON)
	m := NewMetrics()
	c := newDatasetCache(fetcher.NewOpener(fetcher.Options{}), m, 100*time.Millisecond)
	ctx := context.Background()

	first, err := c.Get(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"airspace":[{"name":""}]}`), 0o644))
	time.Sleep(150 * time.Millisecond)

	second, err := c.Get(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("error")))

	// The failed refresh marks the copy fresh again, so the next lookup is a hit.
	third, err := c.Get(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, third)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues("hit")))
}

func TestDatasetCache_BreakerOpens(t *testing.T) {
	m := NewMetrics()
	c := newDatasetCache(fetcher.NewOpener(fetcher.Options{}), m, time.Hour)
	source := filepath.Join(t.TempDir(), "missing.json")
	ctx := context.Background()

	for range 3 {
		_, err := c.Get(ctx, source)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit open")
	}

	_, err := c.Get(ctx, source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
}

func TestCORS(t *testing.T) {
	srv := New(Options{
		Source:         "unused.json",
		AllowedOrigins: []string{"https://example.com"},
		Opener:         fetcher.NewOpener(fetcher.Options{}),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_Shutdown(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
