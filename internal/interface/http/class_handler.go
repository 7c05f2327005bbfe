package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/internal/interface/middleware"
	"github.com/oksasatya/art-school-server/pkg/response"
)

// MaxImageSize caps class image uploads.
const MaxImageSize = 5 << 20

type ClassHandler struct {
	Svc    *application.ClassService
	Guard  *OwnerGuard
	Logger *logrus.Logger
}

func NewClassHandler(svc *application.ClassService, guard *OwnerGuard, logger *logrus.Logger) *ClassHandler {
	return &ClassHandler{Svc: svc, Guard: guard, Logger: logger}
}

type classRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	Image          string  `json:"image" binding:"omitempty,url"`
	InstructorName string  `json:"instructorName" binding:"max=120"`
	AvailableSeats int     `json:"Available-seats" binding:"gte=0"`
	Price          float64 `json:"price" binding:"money"`
}

func (r classRequest) toEntity() *entity.Class {
	return &entity.Class{
		Name:           r.Name,
		Image:          r.Image,
		InstructorName: r.InstructorName,
		AvailableSeats: r.AvailableSeats,
		Price:          r.Price,
	}
}

type classStatusRequest struct {
	Status   string `json:"status" binding:"required,classstatus"`
	Feedback string `json:"feedback" binding:"max=2000"`
}

func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Search handles GET /classes/search?q=&size=.
func (h *ClassHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// Stats handles GET /stat.
func (h *ClassHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"result": stats})
}

func (h *ClassHandler) Instructors(c *gin.Context) {
	list, err := h.Svc.ListInstructors(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// MyClasses handles GET /my-classes?email=.
func (h *ClassHandler) MyClasses(c *gin.Context) {
	email, ok := h.Guard.Scope(c, c.Query("email"))
	if !ok {
		return
	}
	classes, err := h.Svc.ListByInstructor(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserEmail(c), req.toEntity())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Update handles PUT /classes/:id for the instructor who owns the class.
func (h *ClassHandler) Update(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.UpdateDetails(c.Request.Context(), middleware.UserEmail(c), c.Param("id"), req.toEntity())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// UpdateStatus handles PATCH /classes/:id (admin review).
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	var req classStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), entity.ClassStatus(req.Status), req.Feedback)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// UploadImage handles POST /classes/:id/image with a multipart "image" field.
func (h *ClassHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize+1<<10)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	if fh.Size > MaxImageSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "image too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusUnsupportedMediaType, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), middleware.UserEmail(c), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"image": url})
}
