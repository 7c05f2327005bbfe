package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Guard  *OwnerGuard
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, guard *OwnerGuard, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Guard: guard, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"max=120"`
	Photo    string `json:"photo" binding:"omitempty,url"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Photo:    req.Photo,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// List handles GET /users (admin only).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// GetByEmail handles GET /users/:email; the body is null when no identity exists.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email, ok := h.Guard.Scope(c, c.Param("email"))
	if !ok {
		return
	}
	u, err := h.Svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// Role handles GET /users/role/:email.
func (h *UserHandler) Role(c *gin.Context) {
	email, ok := h.Guard.Scope(c, c.Param("email"))
	if !ok {
		return
	}
	role, err := h.Svc.RoleOf(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"role": role})
}

// UpdateRole handles PATCH /users/:id?role=.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	res, err := h.Svc.UpdateRole(c.Request.Context(), middleware.UserEmail(c), c.Param("id"), c.Query("role"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
