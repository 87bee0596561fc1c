package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/usecase"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

// accessTokenHeader carries the shared webhook secret set at the gateway.
const accessTokenHeader = "asaas-access-token"

type WebhookHandler struct {
	service *usecase.WebhookService
	logger  *zap.Logger
}

func NewWebhookHandler(service *usecase.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger,
	}
}

// HandleWebhook handles POST /api/pagamentos/webhook. The shared-secret
// header is checked before the event reaches the engine.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	token := c.Request().Header.Get(accessTokenHeader)
	if !h.service.ValidateAccessToken(token) {
		h.logger.Warn("webhook delivery rejected: invalid access token",
			zap.String("remote_ip", c.RealIP()))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	var event model.WebhookEvent
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed webhook payload")
	}

	if err := h.service.ProcessEvent(c.Request().Context(), &event); err != nil {
		apperrors.LogError(h.logger, err, "webhook processing failed",
			zap.String("event", event.Event))
		return apperrors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}
