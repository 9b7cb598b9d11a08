package handler

import (
	"errors"
	"net/http"
	"strconv"

	"artisan/internal/payments"
	"artisan/pkg/gateway"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *payments.Service
}

func NewPaymentHandler(svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Process handles POST /api/v1/payments/process.
func (h *PaymentHandler) Process(c *gin.Context) {
	var req struct {
		OrderID uint    `json:"order_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		Method  string  `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id, positive amount and method are required"})
		return
	}

	resp, err := h.svc.ProcessPayment(c.Request.Context(), payments.Request{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
	})
	if err != nil {
		h.writeError(c, resp, err)
		return
	}
	// FAILED is still a completed processing attempt, not a transport error.
	c.JSON(http.StatusOK, resp)
}

// StatusByOrder handles GET /api/v1/payments/order/:orderId/status.
func (h *PaymentHandler) StatusByOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil || orderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	resp, err := h.svc.GetStatusByOrder(c.Request.Context(), uint(orderID))
	if err != nil {
		h.writeError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) writeError(c *gin.Context, resp *payments.Response, err error) {
	switch {
	case errors.Is(err, payments.ErrInvalidRequest), gateway.IsUnknownMethod(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrAlreadySettled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrOrderSync):
		// The payment settled; only the order push failed. Return the view so
		// the caller can see the terminal state.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "payment": resp})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing payment"})
	}
}
