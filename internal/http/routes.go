package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"review-pool.com/review-pool/internal/constants"
	middleware "review-pool.com/review-pool/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, gatherer prometheus.Gatherer, jwtSecret string, rateLimitPerMinute int) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := e.Group("/v1", middleware.Auth(jwtSecret), middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	requester := middleware.RequireRole(constants.RoleRequester)
	worker := middleware.RequireRole(constants.RoleWorker)

	v1.POST("/requester/signin", h.RequesterSignin, requester)
	v1.POST("/tasks", h.FundTask, requester)
	v1.GET("/tasks", h.ListTasks, requester)
	v1.POST("/tasks/:id/renew", h.RenewTask, requester)
	v1.GET("/tasks/:id", h.GetTask, requester)

	v1.POST("/worker/signin", h.WorkerSignin, worker)
	v1.GET("/worker/tasks/next", h.NextTasks, worker)
	v1.POST("/tasks/:id/submissions", h.SubmitReview, worker)
	v1.GET("/worker/balance", h.Balance, worker)
	v1.POST("/worker/payouts/lock", h.LockPayout, worker)
	v1.POST("/worker/payouts/confirm", h.ConfirmPayout, worker)
}
