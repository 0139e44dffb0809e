package opendata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"buildinghealth_backend/platform/cache"
	"buildinghealth_backend/platform/logger"
)

type testConfig struct {
	baseURL string
	token   string
}

func (c testConfig) GetOpenDataBaseURL() string                 { return c.baseURL }
func (c testConfig) GetOpenDataAppToken() string                { return c.token }
func (c testConfig) GetOpenDataTimeout() time.Duration          { return 200 * time.Millisecond }
func (c testConfig) GetOpenDataCoreTimeout() time.Duration      { return 400 * time.Millisecond }
func (c testConfig) GetOpenDataPortfolioTimeout() time.Duration { return time.Second }
func (c testConfig) GetOpenDataCacheTTL() time.Duration         { return time.Minute }
func (c testConfig) GetOpenDataDatasetsFile() string            { return "" }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(testConfig{baseURL: srv.URL, token: "tok"}, catalog, logger.Discard(), opts...)
}

func TestQueryEncode(t *testing.T) {
	q := NewQuery().
		Eq("bbl", "1000100001").
		Where("boro='1'").
		Wheref("block=%d", 10).
		Order("issue_date DESC").
		Limit(25)

	got := q.Encode()
	want := "%24limit=25&%24order=issue_date+DESC&%24where=boro%3D%271%27+AND+block%3D10&bbl=1000100001"
	if got != want {
		t.Fatalf("unexpected encoding\n got %s\nwant %s", got, want)
	}
}

func TestQuoteAndWithinCircle(t *testing.T) {
	if got := Quote("O'Brien"); got != "'O''Brien'" {
		t.Fatalf("unexpected quote %s", got)
	}
	got := WithinCircle("the_geom", Point{Lat: 40.75, Lng: -73.99}, 500)
	if got != "within_circle(the_geom,40.75,-73.99,500)" {
		t.Fatalf("unexpected predicate %s", got)
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"s":     "12.5",
		"n":     float64(3),
		"blank": "",
		"the_geom": map[string]any{
			"type":        "Point",
			"coordinates": []any{-73.98, 40.7},
		},
	}
	if r.Number("s") != 12.5 || r.Number("n") != 3 || r.Number("missing") != 0 {
		t.Fatalf("unexpected numbers")
	}
	if r.String("n") != "3" {
		t.Fatalf("expected formatted number, got %q", r.String("n"))
	}
	if r.Has("blank") || !r.Has("s") {
		t.Fatalf("unexpected Has results")
	}
	if r.First("blank", "s") != "12.5" {
		t.Fatalf("unexpected First")
	}
	p, ok := r.Point()
	if !ok || p.Lat != 40.7 || p.Lng != -73.98 {
		t.Fatalf("unexpected point %+v %v", p, ok)
	}
}

func TestFetchSendsHeadersAndDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resource/64uk-42ks.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-App-Token") != "tok" || r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing headers: %v", r.Header)
		}
		if r.URL.Query().Get("bbl") != "1000100001" {
			t.Errorf("missing bbl filter: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"bbl":"1000100001","latitude":"40.7"}]`))
	})

	res := client.Fetch(context.Background(), Pluto, NewQuery().Eq("bbl", "1000100001").Limit(1), 0)
	if res.Err != nil {
		t.Fatalf("unexpected error %v", res.Err)
	}
	if len(res.Rows()) != 1 || res.Rows()[0].Number("latitude") != 40.7 {
		t.Fatalf("unexpected rows %v", res.Rows())
	}
}

func TestFetchDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"error":true}`)) }},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			res := client.Fetch(context.Background(), HPDViolations, NewQuery(), 50*time.Millisecond)
			if res.Err == nil {
				t.Fatalf("expected error")
			}
			if rows := res.Rows(); rows == nil || len(rows) != 0 {
				t.Fatalf("expected empty non-nil rows, got %v", rows)
			}
		})
	}
}

func TestFetchUnknownDataset(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Errorf("no request expected")
	})
	res := client.Fetch(context.Background(), "nope", NewQuery(), 0)
	if !errors.Is(res.Err, ErrUnknownDataset) {
		t.Fatalf("expected ErrUnknownDataset, got %v", res.Err)
	}
}

func TestFetchCachesSuccessOnly(t *testing.T) {
	var hits atomic.Int32
	var fail atomic.Bool
	fail.Store(true)
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"a":"1"}]`))
	}, WithCache(cache.NewMemory(), time.Minute))

	ctx := context.Background()
	q := NewQuery().Eq("bbl", "1")

	if res := client.Fetch(ctx, Rodents, q, 0); res.Err == nil {
		t.Fatalf("expected first call to fail")
	}
	fail.Store(false)
	if res := client.Fetch(ctx, Rodents, q, 0); len(res.Rows()) != 1 {
		t.Fatalf("expected rows after recovery, got %v", res)
	}
	if res := client.Fetch(ctx, Rodents, q, 0); len(res.Rows()) != 1 {
		t.Fatalf("expected cached rows, got %v", res)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected 2 upstream hits, got %d", hits.Load())
	}
}

type stalledStore struct{}

func (stalledStore) Get(ctx context.Context, _ string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(2 * time.Second):
		return nil, cache.ErrMiss
	}
}

func (stalledStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (stalledStore) Close() error                                             { return nil }

func TestFetchTimeoutCoversCacheRead(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, WithCache(stalledStore{}, time.Minute))

	start := time.Now()
	res := client.Fetch(context.Background(), Rodents, NewQuery(), 50*time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected the source deadline to bound the cache read, took %v", elapsed)
	}
	if res.Err == nil {
		t.Fatalf("expected the expired source to fail")
	}
	if len(res.Rows()) != 0 {
		t.Fatalf("expected no rows, got %v", res.Rows())
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "wvxf-dwi5"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.Contains(r.URL.Path, "ygpa-z7cr"):
			<-r.Context().Done()
		default:
			_, _ = w.Write([]byte(`[{"ok":"1"},{"ok":"2"}]`))
		}
	})

	ctx := context.Background()
	fetch := func(dataset string) func(context.Context) Result {
		return func(ctx context.Context) Result {
			return client.Fetch(ctx, dataset, NewQuery(), 100*time.Millisecond)
		}
	}
	calls := []Call{
		{Key: "violations", Fetch: fetch(HPDViolations)},
		{Key: "complaints", Fetch: fetch(HPDComplaints)},
		{Key: "rodents", Fetch: fetch(Rodents)},
		{Key: "panics", Fetch: func(context.Context) Result { panic("boom") }},
		{Key: "skipped"},
	}

	results := FetchAll(ctx, 0, calls)

	if len(results.Get("violations")) != 0 || results.Err("violations") == nil {
		t.Fatalf("expected failed violations")
	}
	if len(results.Get("complaints")) != 0 || results.Err("complaints") == nil {
		t.Fatalf("expected timed out complaints")
	}
	if len(results.Get("rodents")) != 2 {
		t.Fatalf("expected rodents unaffected, got %v", results.Get("rodents"))
	}
	if results.Err("panics") == nil {
		t.Fatalf("expected recovered panic")
	}
	if results.Err("skipped") != nil || len(results.Get("skipped")) != 0 {
		t.Fatalf("expected skipped call to be empty")
	}
	if len(results.Get("never-registered")) != 0 {
		t.Fatalf("expected unknown key to read empty")
	}
	if len(results.Failed()) != 3 {
		t.Fatalf("expected 3 failed keys, got %v", results.Failed())
	}
}

func TestFetchNearbyTriesFieldsThenFallback(t *testing.T) {
	var (
		mu     sync.Mutex
		wheres []string
	)
	seen := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), wheres...)
	}
	reset := func() {
		mu.Lock()
		wheres = nil
		mu.Unlock()
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		where := r.URL.Query().Get("$where")
		mu.Lock()
		wheres = append(wheres, where)
		mu.Unlock()
		if strings.HasPrefix(where, "within_circle(location,") {
			_, _ = w.Write([]byte(`[{"name":"park"}]`))
			return
		}
		if where == "" {
			_, _ = w.Write([]byte(`[{"name":"any"},{"name":"other"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	ctx := context.Background()
	at := &Point{Lat: 40.7, Lng: -73.9}

	res := client.FetchNearby(ctx, Parks, at, 1200, []string{"the_geom", "location", "lat_lon"}, NewQuery().Limit(3000), 200)
	if !res.Spatial || len(res.Rows()) != 1 {
		t.Fatalf("expected spatial hit on second field, got %+v", res)
	}
	if got := seen(); len(got) != 2 || !strings.HasPrefix(got[0], "within_circle(the_geom,") {
		t.Fatalf("expected the_geom then location, got %v", got)
	}

	reset()
	res = client.FetchNearby(ctx, Parks, at, 1200, []string{"the_geom"}, NewQuery().Limit(3000), 200)
	if res.Spatial || len(res.Rows()) != 2 {
		t.Fatalf("expected fallback rows, got %+v", res)
	}

	reset()
	res = client.FetchNearby(ctx, Parks, nil, 1200, []string{"the_geom"}, NewQuery().Limit(3000), 200)
	if got := seen(); res.Spatial || len(res.Rows()) != 2 || len(got) != 1 {
		t.Fatalf("expected only fallback without location, got %+v %v", res, got)
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	if err := os.WriteFile(path, []byte("datasets:\n  pluto: abcd-1234\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if id, _ := cat.ID(Pluto); id != "abcd-1234" {
		t.Fatalf("expected override, got %s", id)
	}
	if id, _ := cat.ID(HPDViolations); id != "wvxf-dwi5" {
		t.Fatalf("expected embedded default kept, got %s", id)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing override")
	}
}
