package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/pkg/response"
)

type EnrollmentHandler struct {
	Svc    *application.EnrollmentService
	Guard  *OwnerGuard
	Logger *logrus.Logger
}

func NewEnrollmentHandler(svc *application.EnrollmentService, guard *OwnerGuard, logger *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{Svc: svc, Guard: guard, Logger: logger}
}

type enrollmentRequest struct {
	ClassID        string  `json:"classId" binding:"required"`
	Name           string  `json:"name" binding:"max=200"`
	Image          string  `json:"image" binding:"omitempty,url"`
	InstructorName string  `json:"instructorName" binding:"max=120"`
	Price          float64 `json:"price" binding:"money"`
	Email          string  `json:"email" binding:"omitempty,email"`
}

// Add handles POST /added-classes.
func (h *EnrollmentHandler) Add(c *gin.Context) {
	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	owner, ok := h.Guard.Permit(c, req.Email)
	if !ok {
		return
	}
	res, err := h.Svc.Add(c.Request.Context(), owner, &entity.Enrollment{
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		Price:          req.Price,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// List handles GET /added-classes?email=.
func (h *EnrollmentHandler) List(c *gin.Context) {
	email, ok := h.Guard.Scope(c, c.Query("email"))
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Remove handles DELETE /added-classes/:id; another user's id deletes nothing.
func (h *EnrollmentHandler) Remove(c *gin.Context) {
	res, err := h.Svc.Remove(c.Request.Context(), middleware.UserEmail(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
