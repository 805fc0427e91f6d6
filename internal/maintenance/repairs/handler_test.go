package repairs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/auth"
)

var testSecret = []byte("test-secret")

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api/v1", auth.RequireAuth(testSecret))
	staff := authed.Group("", auth.RequireRole(auth.RoleTechnician, auth.RoleAdmin))
	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	RegisterRoutes(authed, staff, admin, svc, func(c *gin.Context) { c.Next() })
	return r
}

func call(t *testing.T, r http.Handler, method, path string, p auth.Principal, body any) *httptest.ResponseRecorder {
	t.Helper()
	tok, _, err := auth.NewTokenIssuer(testSecret, time.Hour).Issue(p.UserID, p.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_RepairFlow(t *testing.T) {
	svc, m := newTestService()
	m.equipment["E"] = equipment.StatusAvailable
	r := newTestRouter(svc)

	w := call(t, r, http.MethodPost, "/api/v1/repairs", reporter, map[string]any{"equipment_id": "E", "description": "fan noise"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var rep RepairResponse
	_ = json.Unmarshal(w.Body.Bytes(), &rep)
	if rep.Status != StatusPending || w.Header().Get("Location") != "/repairs/"+rep.RepairID {
		t.Fatalf("unexpected: %s", w.Body.String())
	}

	// USER は PUT できない
	w = call(t, r, http.MethodPut, "/api/v1/repairs/"+rep.RepairID, reporter, map[string]any{"status": "IN_PROGRESS"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("user put: %d", w.Code)
	}

	for _, st := range []string{"IN_PROGRESS", "UNREPAIRABLE"} {
		w = call(t, r, http.MethodPut, "/api/v1/repairs/"+rep.RepairID, tech, map[string]any{"status": st})
		if w.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", st, w.Code, w.Body.String())
		}
	}

	w = call(t, r, http.MethodGet, "/api/v1/repairs?admin_confirmed=pending", admin, nil)
	var page struct {
		Items []RepairResponse `json:"items"`
		Total int64            `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	if w.Code != http.StatusOK || page.Total != 1 || page.Items[0].AdminConfirmed != nil {
		t.Fatalf("pending list: %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodPost, "/api/v1/repairs/"+rep.RepairID+"/admin-confirm", tech, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("tech confirm: %d", w.Code)
	}
	w = call(t, r, http.MethodPost, "/api/v1/repairs/"+rep.RepairID+"/admin-confirm", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}
	if m.equipment["E"] != equipment.StatusInactive {
		t.Fatalf("equipment=%s", m.equipment["E"])
	}

	w = call(t, r, http.MethodGet, "/api/v1/repairs?status=BROKEN", admin, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: %d", w.Code)
	}
}
