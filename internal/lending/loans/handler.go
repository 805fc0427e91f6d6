package loans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/clock"
	"LabLend-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

// RegisterRoutes: authed は認証済み全員、admin は ADMIN 限定のグループ。
// idem は判断系エンドポイントに挟む Idempotency-Key ミドルウェア
func RegisterRoutes(authed gin.IRoutes, admin gin.IRoutes, svc *Service, idem gin.HandlerFunc) {
	h := &Handler{svc: svc}

	authed.POST("/loans", idem, h.Create)
	authed.GET("/loans", h.List)
	authed.GET("/loans/mine", h.Mine)
	authed.GET("/loans/:id", h.Get)
	authed.POST("/loans/:id/return", idem, h.Return)
	authed.POST("/loans/:id/extend", idem, h.RequestExtend)
	authed.POST("/loans/:id/reschedule", idem, h.RequestReschedule)

	admin.PATCH("/loans/:id/status", idem, h.Decide)
	admin.POST("/loans/:id/extend/decision", idem, h.DecideExtend)
	admin.POST("/loans/:id/reschedule/decision", idem, h.DecideReschedule)
	admin.DELETE("/loans/:id", h.Delete)
	admin.POST("/loans/sweep", h.Sweep)
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		apierr.Respond(c, apierr.Unauthenticated("not signed in"))
	}
	return p, ok
}

// Create godoc
// @Summary  貸出を申請
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    body body CreateLoanRequest true "loan request"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  201 {object} LoanResponse
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), p, req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/loans/"+res.LoanID)
	c.JSON(http.StatusCreated, res)
}

// Decide godoc
// @Summary  貸出申請を承認/却下
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string            true "loan id"
// @Param    body body DecideLoanRequest true "decision"
// @Success  200 {object} LoanResponse
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/status [patch]
func (h *Handler) Decide(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req DecideLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Decide(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Return godoc
// @Summary  返却
// @Tags     loans
// @Produce  json
// @Param    id path string true "loan id"
// @Success  200 {object} LoanResponse
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/return [post]
func (h *Handler) Return(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	res, err := h.svc.Return(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RequestExtend godoc
// @Summary  返却日の延長を申請
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string true "loan id"
// @Param    body body ExtendRequest true "new end date"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} LoanResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/extend [post]
func (h *Handler) RequestExtend(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.RequestExtend(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DecideExtend godoc
// @Summary  延長申請を承認/却下
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string true "loan id"
// @Param    body body ChangeDecisionRequest true "APPROVE|REJECT"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} LoanResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/extend/decision [post]
func (h *Handler) DecideExtend(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ChangeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.DecideExtend(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RequestReschedule godoc
// @Summary  貸出期間の変更を申請
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string true "loan id"
// @Param    body body RescheduleRequest true "new period"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} LoanResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/reschedule [post]
func (h *Handler) RequestReschedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.RequestReschedule(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DecideReschedule godoc
// @Summary  期間変更申請を承認/却下
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    id   path string true "loan id"
// @Param    body body ChangeDecisionRequest true "APPROVE|REJECT"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} LoanResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id}/reschedule/decision [post]
func (h *Handler) DecideReschedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ChangeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.DecideReschedule(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary  貸出を削除
// @Tags     loans
// @Produce  json
// @Param    id   path string true "loan id"
// @Success  204
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get godoc
// @Summary  貸出を取得
// @Tags     loans
// @Produce  json
// @Param    id   path string true "loan id"
// @Success  200 {object} LoanResponse
// @Failure  403 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// List godoc
// @Summary  貸出一覧
// @Tags     loans
// @Produce  json
// @Param    status query string false "loan status"
// @Param    pending_change query string false "EXTEND|RESCHEDULE"
// @Param    user_id query string false "user id"
// @Param    equipment_id query string false "equipment id"
// @Param    from query string false "YYYY-MM-DD"
// @Param    to query string false "YYYY-MM-DD"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[LoanResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /loans [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), p, f, paging.FromQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /loans/mine は ADMIN でも自分の分だけ
//
// @Summary  自分の貸出一覧
// @Tags     loans
// @Produce  json
// @Param    status query string false "loan status"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[LoanResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /loans/mine [get]
func (h *Handler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	uid := p.UserID
	f.UserID = &uid
	res, err := h.svc.List(c.Request.Context(), p, f, paging.FromQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Sweep は日付遷移を即時に走らせる（運用向け）
//
// @Summary  日付による状態遷移を即時実行
// @Tags     loans
// @Produce  json
// @Success  200 {object} SweepResult
// @Security BearerAuth
// @Router   /loans/sweep [post]
func (h *Handler) Sweep(c *gin.Context) {
	res, err := h.svc.Sweep(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	var f Filter
	if v := c.Query("status"); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			return f, apierr.InvalidField("status", "unknown status")
		}
		f.Status = &st
	}
	if v := c.Query("pending_change"); v != "" {
		pc, ok := ParsePendingChange(v)
		if !ok {
			return f, apierr.InvalidField("pending_change", "pending_change must be EXTEND or RESCHEDULE")
		}
		f.PendingChange = &pc
	}
	if v := c.Query("user_id"); v != "" {
		f.UserID = &v
	}
	if v := c.Query("equipment_id"); v != "" {
		f.EquipmentID = &v
	}
	if v := c.Query("from"); v != "" {
		d, err := clock.ParseDate(v)
		if err != nil {
			return f, apierr.InvalidField("from", "from must be YYYY-MM-DD")
		}
		f.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := clock.ParseDate(v)
		if err != nil {
			return f, apierr.InvalidField("to", "to must be YYYY-MM-DD")
		}
		f.To = &d
	}
	return f, nil
}
