package labs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

// RegisterRoutes: 参照は認証済みなら誰でも、更新は ADMIN のみ
func RegisterRoutes(read gin.IRoutes, write gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	read.GET("/labs", h.List)
	read.GET("/labs/:id", h.Get)
	write.POST("/labs", h.Create)
	write.PUT("/labs/:id", h.Update)
	write.DELETE("/labs/:id", h.Delete)
}

// Create godoc
// @Summary  研究室を登録
// @Tags     labs
// @Accept   json
// @Produce  json
// @Param    body body CreateLabRequest true "lab"
// @Success  201 {object} LabResponse
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /labs [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/labs/"+res.LabID)
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  研究室一覧
// @Tags     labs
// @Produce  json
// @Param    q query string false "name / location"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[LabResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /labs [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Query("q"), paging.FromQuery(c))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary  研究室取得
// @Tags     labs
// @Produce  json
// @Param    id   path string true "lab id"
// @Success  200 {object} LabResponse
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /labs/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  研究室更新
// @Tags     labs
// @Accept   json
// @Produce  json
// @Param    id   path string true "lab id"
// @Param    body body UpdateLabRequest true "fields"
// @Success  200 {object} LabResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /labs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateLabRequest
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
// @Summary  研究室削除
// @Tags     labs
// @Produce  json
// @Param    id   path string true "lab id"
// @Success  204
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /labs/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
