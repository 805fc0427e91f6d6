package repairs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

// RegisterRoutes: staff は TECHNICIAN/ADMIN、admin は ADMIN 限定のグループ
func RegisterRoutes(authed, staff, admin gin.IRoutes, svc *Service, idem gin.HandlerFunc) {
	h := &Handler{svc: svc}

	authed.POST("/repairs", idem, h.Create)
	authed.GET("/repairs", h.List)
	authed.GET("/repairs/:id", h.Get)

	staff.PUT("/repairs/:id", idem, h.Update)

	admin.POST("/repairs/:id/admin-confirm", idem, h.ConfirmUnrepairable)
	admin.POST("/repairs/:id/admin-reject", idem, h.RejectUnrepairable)
	admin.DELETE("/repairs/:id", h.Delete)
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		apierr.Respond(c, apierr.Unauthenticated("not signed in"))
	}
	return p, ok
}

// Create godoc
// @Summary  故障を報告
// @Tags     repairs
// @Accept   json
// @Produce  json
// @Param    body body CreateRepairRequest true "report"
// @Success  201 {object} RepairResponse
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), p, req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/repairs/"+res.RepairID)
	c.JSON(http.StatusCreated, res)
}

// Update godoc
// @Summary  修理状況を更新
// @Tags     repairs
// @Accept   json
// @Produce  json
// @Param    id   path string              true "repair id"
// @Param    body body UpdateRepairRequest true "status / notes"
// @Success  200 {object} RepairResponse
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConfirmUnrepairable godoc
// @Summary  修理不能を確定（機器を INACTIVE に）
// @Tags     repairs
// @Produce  json
// @Param    id   path string true "repair id"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} RepairResponse
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs/{id}/admin-confirm [post]
func (h *Handler) ConfirmUnrepairable(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	res, err := h.svc.ConfirmUnrepairable(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RejectUnrepairable godoc
// @Summary  修理不能を差し戻す
// @Tags     repairs
// @Accept   json
// @Produce  json
// @Param    id   path string true "repair id"
// @Param    body body AdminRejectRequest true "notes"
// @Param    Idempotency-Key header string false "idempotency key"
// @Success  200 {object} RepairResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs/{id}/admin-reject [post]
func (h *Handler) RejectUnrepairable(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req AdminRejectRequest
	// body は任意
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierr.BadJSON(c)
			return
		}
	}
	res, err := h.svc.RejectUnrepairable(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary  修理記録を削除
// @Tags     repairs
// @Produce  json
// @Param    id   path string true "repair id"
// @Success  204
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs/{id} [delete]
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
// @Summary  修理記録を取得
// @Tags     repairs
// @Produce  json
// @Param    id   path string true "repair id"
// @Success  200 {object} RepairResponse
// @Failure  403 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs/{id} [get]
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
// @Summary  修理記録一覧
// @Tags     repairs
// @Produce  json
// @Param    status query string false "repair status"
// @Param    equipment_id query string false "equipment id"
// @Param    technician_id query string false "technician id"
// @Param    admin_confirmed query string false "pending"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[RepairResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /repairs [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var f Filter
	if v := c.Query("status"); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			apierr.Respond(c, apierr.InvalidField("status", "unknown repair status"))
			return
		}
		f.Status = &st
	}
	if v := c.Query("equipment_id"); v != "" {
		f.EquipmentID = &v
	}
	if v := c.Query("technician_id"); v != "" {
		f.TechnicianID = &v
	}
	f.AwaitingConfirmation = c.Query("admin_confirmed") == "pending"

	res, err := h.svc.List(c.Request.Context(), p, f, paging.FromQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
