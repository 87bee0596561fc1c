package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/usecase"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

type PaymentHandler struct {
	service  *usecase.PaymentService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewPaymentHandler(service *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreatePayment handles POST /api/pagamentos.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.CreatePayment(c.Request().Context(), req.toInput(clientIP(c)))
	if err != nil {
		apperrors.LogError(h.logger, err, "payment creation failed",
			zap.Int64("order_id", req.Payment.OrderID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

// GetPaymentByOrder handles GET /api/pagamentos/pedidos/:pedidoId.
func (h *PaymentHandler) GetPaymentByOrder(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("pedidoId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	payment, err := h.service.GetPaymentByOrder(c.Request().Context(), orderID)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

// RefundPayment handles POST /api/pagamentos/pedidos/:pedidoId/reembolso.
func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("pedidoId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req RefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	payment, err := h.service.RefundPayment(c.Request().Context(), orderID, req.Motive)
	if err != nil {
		apperrors.LogError(h.logger, err, "refund failed", zap.Int64("order_id", orderID))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

// clientIP resolves the caller address for card fraud signaling:
// X-Forwarded-For first, then X-Real-IP, then the connection address.
func clientIP(c echo.Context) string {
	if forwarded := c.Request().Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
	}
	if realIP := c.Request().Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.RealIP()
}
