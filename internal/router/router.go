package router

import (
	"math/rand"
	"net/http"
	"time"

	"artisan/config"
	"artisan/internal/handler"
	"artisan/internal/lock"
	"artisan/internal/middleware"
	"artisan/internal/payments"
	"artisan/internal/repository"
	"artisan/pkg/gateway"
	"artisan/pkg/orders"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup wires the payment service and returns the HTTP engine. locker is the
// per-order serialization point picked in main (in-process or redis-backed).
func Setup(cfg *config.Config, db *gorm.DB, locker lock.Locker) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	paymentRepo := repository.NewPaymentRepository(db)
	mock := gateway.NewMockStrategyWithSource(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg.Gateway.SuccessPercent,
	)
	registry := gateway.DefaultRegistry(mock)
	sink := orders.NewClient(cfg.OrderService.BaseURL, cfg.OrderService.Timeout)

	svc := payments.NewService(paymentRepo, registry, sink, locker, cfg.Gateway.Timeout, cfg.OrderService.Timeout)
	paymentHandler := handler.NewPaymentHandler(svc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		pay := api.Group("/payments")
		pay.POST("/process", paymentHandler.Process)
		pay.GET("/order/:orderId/status", paymentHandler.StatusByOrder)
	}
	return r
}
