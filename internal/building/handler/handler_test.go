package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/platform/apperr"
	"buildinghealth_backend/platform/httpkit"
	"buildinghealth_backend/platform/validator"
)

const testCacheControl = "public, s-maxage=300"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	bbl        domain.BBL
	limit      int
	lookupErr  error
	historyErr error
}

func (f *fakeService) Lookup(_ context.Context, bbl domain.BBL) (*transport.Report, error) {
	f.bbl = bbl
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return &transport.Report{Score: transport.ScoreSummary{Overall: 97, Grade: "A", Label: "Excellent"}}, nil
}

func (f *fakeService) History(_ context.Context, bbl domain.BBL, limit int) (transport.HistoryResponse, error) {
	f.bbl, f.limit = bbl, limit
	if f.historyErr != nil {
		return transport.HistoryResponse{}, f.historyErr
	}
	return transport.HistoryResponse{BBL: bbl.String(), Lookups: []transport.HistoryEntry{}}, nil
}

func newEngine(t *testing.T, svc Service) *gin.Engine {
	t.Helper()
	val := validator.New()
	if err := RegisterValidations(val); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	h := New(svc, val)

	engine := gin.New()
	engine.GET("/building", httpkit.CacheControl(testCacheControl), h.Lookup)
	engine.GET("/building/history", h.History)
	return engine
}

func serve(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestLookupRejectsBadBBL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"missing", "/building", msgBBLRequired},
		{"empty", "/building?bbl=", msgBBLRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(newEngine(t, svc), tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := errorMessage(t, rec); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if svc.bbl != "" {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestLookupNormalizesAndCaches(t *testing.T) {
	svc := &fakeService{}
	rec := serve(newEngine(t, svc), "/building?bbl=1-00001-0001")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.bbl != "1000010001" {
		t.Fatalf("expected normalized bbl, got %q", svc.bbl)
	}
	if got := rec.Header().Get("Cache-Control"); got != testCacheControl {
		t.Fatalf("expected cache header, got %q", got)
	}
	var report transport.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Score.Overall != 97 {
		t.Fatalf("unexpected report %+v", report.Score)
	}
}

func TestLookupPadsBBLWithoutDigits(t *testing.T) {
	for _, raw := range []string{"abc", "-", "bbl%3D%3F"} {
		svc := &fakeService{}
		rec := serve(newEngine(t, svc), "/building?bbl="+raw)

		if rec.Code != http.StatusOK {
			t.Fatalf("bbl=%s: expected 200, got %d: %s", raw, rec.Code, rec.Body.String())
		}
		if svc.bbl != "0000000000" {
			t.Fatalf("bbl=%s: expected zero-padded bbl, got %q", raw, svc.bbl)
		}
	}
}

func TestLookupFailureIsNotCached(t *testing.T) {
	svc := &fakeService{lookupErr: apperr.Internal("Failed to fetch data")}
	rec := serve(newEngine(t, svc), "/building?bbl=1000010001")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "Failed to fetch data" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no cache header on failure, got %q", got)
	}
}

func TestHistoryValidatesLimit(t *testing.T) {
	svc := &fakeService{}
	engine := newEngine(t, svc)

	rec := serve(engine, "/building/history?bbl=1000010001&limit=500")
	if rec.Code != http.StatusBadRequest || errorMessage(t, rec) != msgInvalidLimit {
		t.Fatalf("expected limit rejection, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(engine, "/building/history?bbl=1000010001&limit=abc")
	if rec.Code != http.StatusBadRequest || errorMessage(t, rec) != msgInvalidRequest {
		t.Fatalf("expected bind rejection, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(engine, "/building/history?bbl=1000010001&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.limit != 5 || svc.bbl != "1000010001" {
		t.Fatalf("unexpected call bbl=%q limit=%d", svc.bbl, svc.limit)
	}
}

func TestHistoryUnavailable(t *testing.T) {
	svc := &fakeService{historyErr: apperr.Unavailable("lookup history is not configured")}
	rec := serve(newEngine(t, svc), "/building/history?bbl=1000010001")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
