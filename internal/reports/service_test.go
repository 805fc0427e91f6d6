package reports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/clock"
)

type fakeRepo struct {
	calls   atomic.Int32
	months  map[int]int64
	summary Summary
}

func (f *fakeRepo) MostBorrowed(_ context.Context, _ Range, limit int) ([]EquipmentCount, error) {
	f.calls.Add(1)
	out := []EquipmentCount{{EquipmentID: "E1", Name: "Scope", SerialNumber: "SN-1", Count: 5}, {EquipmentID: "E2", Name: "Meter", SerialNumber: "SN-2", Count: 2}}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) MostRepaired(context.Context, Range, int) ([]EquipmentCount, error) {
	f.calls.Add(1)
	return []EquipmentCount{}, nil
}

func (f *fakeRepo) LoansByLab(context.Context, Range) ([]LabCount, error) {
	f.calls.Add(1)
	return []LabCount{{LabID: "L1", LabName: "Physics", Count: 4}, {Count: 1}}, nil
}

func (f *fakeRepo) RepairsByTechnician(context.Context, Range) ([]TechnicianCount, error) {
	f.calls.Add(1)
	return []TechnicianCount{{TechnicianID: "T1", Username: "tech", Count: 3, Completed: 2}}, nil
}

func (f *fakeRepo) LoansByMonth(context.Context, int) (map[int]int64, error) {
	f.calls.Add(1)
	return f.months, nil
}

func (f *fakeRepo) LoansByYear(context.Context) ([]PeriodCount, error) {
	f.calls.Add(1)
	return []PeriodCount{{Period: "2023", Count: 10}, {Period: "2024", Count: 12}}, nil
}

func (f *fakeRepo) Summary(context.Context) (Summary, error) {
	f.calls.Add(1)
	return f.summary, nil
}

func newTestService(t *testing.T, withCache bool) (*Service, *fakeRepo, *miniredis.Miniredis) {
	t.Helper()
	repo := &fakeRepo{months: map[int]int64{2: 3, 11: 1}}
	var (
		rdb *redis.Client
		mr  *miniredis.Miniredis
	)
	if withCache {
		mr = miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	svc := NewService(repo, NewCache(rdb, time.Minute))
	svc.clock = clock.Fixed(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	return svc, repo, mr
}

func TestLoansMonthly_ZeroFilled(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	rows, err := svc.LoansMonthly(context.Background(), 2024)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0].Period != "2024-01" || rows[0].Count != 0 {
		t.Fatalf("jan: %+v", rows[0])
	}
	if rows[1].Count != 3 || rows[10].Count != 1 || rows[11].Period != "2024-12" {
		t.Fatalf("unexpected: %+v", rows)
	}
}

func TestCache_ServesRepeatedQueries(t *testing.T) {
	svc, repo, mr := newTestService(t, true)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rows, err := svc.MostBorrowed(ctx, Range{}, 1)
		if err != nil || len(rows) != 1 || rows[0].EquipmentID != "E1" {
			t.Fatalf("most borrowed: %+v %v", rows, err)
		}
	}
	if n := repo.calls.Load(); n != 1 {
		t.Fatalf("store called %d times", n)
	}

	// パラメータが違えば別キー
	if _, err := svc.MostBorrowed(ctx, Range{}, 2); err != nil {
		t.Fatalf("most borrowed: %v", err)
	}
	if n := repo.calls.Load(); n != 2 {
		t.Fatalf("store called %d times", n)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := svc.MostBorrowed(ctx, Range{}, 1); err != nil {
		t.Fatalf("most borrowed: %v", err)
	}
	if n := repo.calls.Load(); n != 3 {
		t.Fatalf("expired entry should reload, calls=%d", n)
	}
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	svc, repo, mr := newTestService(t, true)
	mr.Close()

	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if repo.calls.Load() != 1 {
		t.Fatalf("calls=%d", repo.calls.Load())
	}
}

func TestParseInputs(t *testing.T) {
	svc, _, _ := newTestService(t, false)

	if _, err := ParseRange("2024-07-10", "2024-07-01"); !apierr.Is(err, apierr.CodeInvalidArgument) {
		t.Fatalf("reversed range: %v", err)
	}
	if _, err := ParseRange("07/01/2024", ""); !apierr.Is(err, apierr.CodeInvalidArgument) {
		t.Fatalf("bad date: %v", err)
	}
	r, err := ParseRange("2024-01-01", "")
	if err != nil || r.From == nil || r.To != nil {
		t.Fatalf("open range: %+v %v", r, err)
	}
	for _, v := range []string{"0", "101", "ten"} {
		if _, err := ParseLimit(v); err == nil {
			t.Fatalf("limit %q should fail", v)
		}
	}
	if n, _ := ParseLimit(""); n != DefaultLimit {
		t.Fatalf("default limit=%d", n)
	}
	if y, _ := svc.ParseYear(""); y != 2024 {
		t.Fatalf("default year=%d", y)
	}
	if _, err := svc.ParseYear("24"); err == nil {
		t.Fatalf("two digit year should fail")
	}
}

func TestHandler_Formats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(t, false)
	r := gin.New()
	RegisterRoutes(r, svc)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/reports/loans-yearly")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Fatalf("json: %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = get("/reports/loans-by-lab?format=csv")
	if w.Code != http.StatusOK || w.Header().Get("Content-Disposition") != `attachment; filename="loans-by-lab.csv"` {
		t.Fatalf("csv: %d %v", w.Code, w.Header())
	}
	if body := w.Body.String(); body != "\ufefflab_id,lab_name,count\nL1,Physics,4\n,,1\n" {
		t.Fatalf("csv body: %q", body)
	}

	w = get("/reports/repairs-by-technician?format=xlsx")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("xlsx: %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = get("/reports/summary?format=pdf")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad format: %d", w.Code)
	}
	w = get("/reports/most-borrowed?limit=500")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: %d", w.Code)
	}
}
