package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/pkg/response"
)

type PaymentHandler struct {
	Svc    *application.PaymentService
	Guard  *OwnerGuard
	Logger *logrus.Logger
}

func NewPaymentHandler(svc *application.PaymentService, guard *OwnerGuard, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Guard: guard, Logger: logger}
}

// intentRequest accepts totalPrice, or price as sent by older clients.
type intentRequest struct {
	TotalPrice *float64 `json:"totalPrice"`
	Price      *float64 `json:"price"`
}

type paymentRequest struct {
	Email         string   `json:"email" binding:"omitempty,email"`
	TransactionID string   `json:"transactionId" binding:"required"`
	Price         float64  `json:"price" binding:"money"`
	Quantity      int      `json:"quantity" binding:"gte=0"`
	EnrollmentIDs []string `json:"cartItems" binding:"required,min=1,dive,required"`
	ClassIDs      []string `json:"classItems" binding:"dive,required"`
	ClassNames    []string `json:"itemNames"`
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req intentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	var price float64
	switch {
	case req.TotalPrice != nil:
		price = *req.TotalPrice
	case req.Price != nil:
		price = *req.Price
	}
	intent, err := h.Svc.CreateIntent(c.Request.Context(), price)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// Record handles POST /payments.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	owner, ok := h.Guard.Permit(c, req.Email)
	if !ok {
		return
	}
	res, err := h.Svc.Record(c.Request.Context(), owner, &entity.Payment{
		TransactionID: req.TransactionID,
		Price:         req.Price,
		Quantity:      req.Quantity,
		EnrollmentIDs: req.EnrollmentIDs,
		ClassIDs:      req.ClassIDs,
		ClassNames:    req.ClassNames,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// List handles GET /payments?email=.
func (h *PaymentHandler) List(c *gin.Context) {
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
