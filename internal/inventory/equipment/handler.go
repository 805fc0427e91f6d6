package equipment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

// RegisterRoutes: read は認証済み全員、write は ADMIN 限定のグループ
func RegisterRoutes(read gin.IRoutes, write gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	read.GET("/equipment", h.List)
	read.GET("/equipment/:id", h.Get)
	read.GET("/equipment/:id/availability", h.Availability)
	write.POST("/equipment", h.Create)
	write.PUT("/equipment/:id", h.Update)
	write.DELETE("/equipment/:id", h.Delete)
}

// Create godoc
// @Summary  機器を登録
// @Tags     equipment
// @Accept   json
// @Produce  json
// @Param    body body CreateEquipmentRequest true "equipment"
// @Success  201 {object} EquipmentResponse
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/equipment/"+res.EquipmentID)
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  機器一覧
// @Tags     equipment
// @Produce  json
// @Param    status query string false "equipment status"
// @Param    lab_id query string false "lab id"
// @Param    type query string false "type"
// @Param    q query string false "name / serial"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[EquipmentResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("status"); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			apierr.Respond(c, apierr.InvalidField("status", "unknown status"))
			return
		}
		f.Status = &st
	}
	if v := c.Query("lab_id"); v != "" {
		f.LabID = &v
	}
	if v := c.Query("type"); v != "" {
		f.Type = &v
	}
	f.Q = c.Query("q")

	res, err := h.svc.List(c.Request.Context(), f, paging.FromQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary  機器取得
// @Tags     equipment
// @Produce  json
// @Param    id   path string true "equipment id"
// @Success  200 {object} EquipmentResponse
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  機器更新
// @Tags     equipment
// @Accept   json
// @Produce  json
// @Param    id   path string true "equipment id"
// @Param    body body UpdateEquipmentRequest true "fields"
// @Success  200 {object} EquipmentResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary  機器削除
// @Tags     equipment
// @Produce  json
// @Param    id   path string true "equipment id"
// @Success  204
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Availability godoc
// @Summary  機器が新規貸出可能か
// @Tags     equipment
// @Produce  json
// @Param    id path string true "equipment id"
// @Success  200 {object} AvailabilityResponse
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /equipment/{id}/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	res, err := h.svc.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
