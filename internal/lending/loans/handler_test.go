package loans

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/idempotency"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	api := r.Group("/api/v1")
	authed := api.Group("", auth.RequireAuth(testSecret))
	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	RegisterRoutes(authed, admin, svc, idempotency.New(rdb, time.Hour).Middleware())
	return r
}

func bearer(t *testing.T, p auth.Principal) string {
	t.Helper()
	tok, _, err := auth.NewTokenIssuer(testSecret, time.Hour).Issue(p.UserID, p.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + tok
}

func doRequest(r http.Handler, method, path, authz string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func TestHandler_LoanLifecycle(t *testing.T) {
	svc, m, _ := newTestService("2024-07-01")
	m.equipment["E"] = equipment.StatusAvailable
	r := newTestRouter(t, svc)
	userTok, adminTok := bearer(t, alice), bearer(t, admin)

	w := doRequest(r, http.MethodPost, "/api/v1/loans", "", map[string]any{"equipment_id": "E", "start_date": "2024-07-01", "end_date": "2024-07-10"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status=%d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/loans", userTok, map[string]any{"equipment_id": "E", "start_date": "2024-06-30", "end_date": "2024-07-10"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("past start status=%d", w.Code)
	}
	var eb errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &eb)
	if eb.Error.Details["field"] != "start_date" {
		t.Fatalf("field detail: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/v1/loans", userTok, map[string]any{"equipment_id": "E", "start_date": "2024-07-01", "end_date": "2024-07-10"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var loan LoanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &loan); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// USER は判断できない（ロールで 403）
	w = doRequest(r, http.MethodPatch, "/api/v1/loans/"+loan.LoanID+"/status", userTok, map[string]any{"decision": "APPROVE"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("user decide status=%d", w.Code)
	}

	// 同じ Idempotency-Key の再送は同じ結果を返し、二重遷移しない
	w = doRequest(r, http.MethodPatch, "/api/v1/loans/"+loan.LoanID+"/status", adminTok, map[string]any{"decision": "APPROVE"}, idempotency.HeaderKey, "approve-1")
	if w.Code != http.StatusOK {
		t.Fatalf("approve status=%d body=%s", w.Code, w.Body.String())
	}
	replay := doRequest(r, http.MethodPatch, "/api/v1/loans/"+loan.LoanID+"/status", adminTok, map[string]any{"decision": "APPROVE"}, idempotency.HeaderKey, "approve-1")
	if replay.Code != http.StatusOK || replay.Header().Get(idempotency.HeaderReplayed) != "true" {
		t.Fatalf("replay status=%d headers=%v", replay.Code, replay.Header())
	}

	// キー無しの二重承認は 409 と現在状態
	w = doRequest(r, http.MethodPatch, "/api/v1/loans/"+loan.LoanID+"/status", adminTok, map[string]any{"decision": "APPROVE"})
	if w.Code != http.StatusConflict {
		t.Fatalf("double approve status=%d", w.Code)
	}
	eb = errorBody{}
	_ = json.Unmarshal(w.Body.Bytes(), &eb)
	if eb.Error.Code != "CONFLICT" || eb.Error.Details["current_state"] != "APPROVED" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/v1/loans/sweep", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sweep status=%d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/loans/"+loan.LoanID+"/return", userTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("return status=%d body=%s", w.Code, w.Body.String())
	}
	if m.equipment["E"] != equipment.StatusAvailable {
		t.Fatalf("equipment=%s", m.equipment["E"])
	}

	w = doRequest(r, http.MethodGet, "/api/v1/loans/mine?status=RETURNED", userTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mine status=%d", w.Code)
	}
	var list struct {
		Items []LoanResponse `json:"items"`
		Total int64          `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.Total != 1 || list.Items[0].Status != StatusReturned {
		t.Fatalf("mine: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/v1/loans?status=bogus", adminTok, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter status=%d", w.Code)
	}
}
