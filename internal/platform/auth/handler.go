package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

// RegisterRoutes: login は公開、me は認証済みグループに載せる
func RegisterRoutes(public gin.IRoutes, authed gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary  Issue a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} LoginResponse
// @Router   /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me godoc
// @Summary  ログイン中のユーザー
// @Tags     auth
// @Produce  json
// @Success  200 {object} AccountView
// @Failure  401 {object} map[string]any
// @Security BearerAuth
// @Router   /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	p, ok := PrincipalFrom(c)
	if !ok {
		apierr.Respond(c, apierr.Unauthenticated("not signed in"))
		return
	}
	res, err := h.svc.Me(c.Request.Context(), p)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
