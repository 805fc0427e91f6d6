package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

// RegisterRoutes: r は ADMIN 限定のグループを渡すこと
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/users", h.Create)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
}

// Create godoc
// @Summary  ユーザー作成
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body CreateUserRequest true "user"
// @Success  201 {object} UserResponse
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /users [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/users/"+res.UserID)
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  ユーザー一覧
// @Tags     users
// @Produce  json
// @Param    role query string false "ADMIN|TECHNICIAN|USER"
// @Param    q query string false "username / email"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "offset"
// @Param    order  query string false "asc|desc"
// @Success  200 {object} paging.Result[UserResponse]
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /users [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("role"); v != "" {
		r, ok := auth.ParseRole(v)
		if !ok {
			apierr.Respond(c, apierr.InvalidField("role", "unknown role"))
			return
		}
		f.Role = &r
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
// @Summary  ユーザー取得
// @Tags     users
// @Produce  json
// @Param    id   path string true "user id"
// @Success  200 {object} UserResponse
// @Failure  404 {object} map[string]any
// @Security BearerAuth
// @Router   /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  ユーザー更新
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    id   path string true "user id"
// @Param    body body UpdateUserRequest true "fields"
// @Success  200 {object} UserResponse
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	var req UpdateUserRequest
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

// Delete godoc
// @Summary  ユーザー削除
// @Tags     users
// @Produce  json
// @Param    id   path string true "user id"
// @Success  204
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Security BearerAuth
// @Router   /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	p, _ := auth.PrincipalFrom(c)
	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
