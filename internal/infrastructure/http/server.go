package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/siseg/payment-service/internal/adapter/handler/http"
	"github.com/siseg/payment-service/internal/config"
	"github.com/siseg/payment-service/internal/domain/gateway"
	"github.com/siseg/payment-service/internal/domain/notification"
	"github.com/siseg/payment-service/internal/infrastructure/database"
	"github.com/siseg/payment-service/internal/usecase"
	"github.com/siseg/payment-service/pkg/logger"
)

type Server struct {
	config        *config.Config
	logger        *zap.Logger
	echo          *echo.Echo
	repos         *database.Repositories
	gatewayClient gateway.Client
	notifier      notification.OrderNotifier
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, gatewayClient gateway.Client, orderNotifier notification.OrderNotifier) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	return &Server{
		config:        cfg,
		logger:        log,
		echo:          e,
		repos:         repos,
		gatewayClient: gatewayClient,
		notifier:      orderNotifier,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	paymentService := usecase.NewPaymentService(
		s.repos.Payment,
		s.repos.Cache,
		s.gatewayClient,
		usecase.NewRefundValidator(),
		s.logger,
	)
	webhookService := usecase.NewWebhookService(
		s.repos.Payment,
		s.repos.Cache,
		s.notifier,
		s.config.Service.Asaas.WebhookSecret,
		s.logger,
	)

	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, s.logger)

	api := s.echo.Group("/api/pagamentos")
	api.POST("", paymentHandler.CreatePayment)
	api.GET("/pedidos/:pedidoId", paymentHandler.GetPaymentByOrder)
	api.POST("/pedidos/:pedidoId/reembolso", paymentHandler.RefundPayment)
	api.POST("/webhook", webhookHandler.HandleWebhook)
}
