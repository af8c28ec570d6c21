package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "review-pool.com/review-pool/internal/data_models"
	apperrors "review-pool.com/review-pool/internal/errors"
	middleware "review-pool.com/review-pool/internal/http/middlewares"
	"review-pool.com/review-pool/internal/http/validators"
	"review-pool.com/review-pool/internal/payments"
	"review-pool.com/review-pool/internal/services"
)

const (
	defaultOpenTaskLimit = 10
	maxOpenTaskLimit     = 50
)

type Handler struct {
	settlement *services.SettlementService
}

func NewHandler(settlement *services.SettlementService) *Handler {
	return &Handler{
		settlement: settlement,
	}
}

func fail(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), echo.Map{
		"success": false,
		"code":    apperrors.CodeOf(err),
		"message": apperrors.PublicMessage(err),
	})
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

func actor(c echo.Context) string {
	a, _ := middleware.ActorFrom(c)
	return a.Address
}

func (h *Handler) RequesterSignin(c echo.Context) error {
	user, err := h.settlement.EnsureRequester(c.Request().Context(), actor(c))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.RequesterResponse{Address: user.Address})
}

func (h *Handler) WorkerSignin(c echo.Context) error {
	worker, err := h.settlement.EnsureWorker(c.Request().Context(), actor(c))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewWorkerResponse(worker))
}

func (h *Handler) FundTask(c echo.Context) error {
	var req dto.FundTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	cmd, err := validators.ValidateFundTaskRequest(actor(c), &req)
	if err != nil {
		return fail(err)
	}

	task, err := h.settlement.FundTask(c.Request().Context(), cmd)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusCreated, dto.NewTaskResponse(task, nil))
}

func (h *Handler) RenewTask(c echo.Context) error {
	var req dto.RenewTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	cmd, err := validators.ValidateRenewTaskRequest(actor(c), c.Param("id"), &req)
	if err != nil {
		return fail(err)
	}

	task, err := h.settlement.RenewTask(c.Request().Context(), cmd)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewTaskResponse(task, nil))
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	view, err := h.settlement.GetTask(c.Request().Context(), actor(c), id)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewTaskResponse(view.Task, view.Tallies))
}

func (h *Handler) ListTasks(c echo.Context) error {
	finished := c.QueryParam("finished") == "true"

	tasks, tallies, err := h.settlement.ListRequesterTasks(c.Request().Context(), actor(c), finished)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": dto.NewTaskListResponse(tasks, tallies),
	})
}

func (h *Handler) NextTasks(c echo.Context) error {
	limit := defaultOpenTaskLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxOpenTaskLimit {
			return fail(apperrors.Validation("limit must be between 1 and 50"))
		}
		limit = n
	}

	tasks, err := h.settlement.ListOpenTasks(c.Request().Context(), actor(c), limit)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": dto.NewTaskListResponse(tasks, nil),
	})
}

func (h *Handler) SubmitReview(c echo.Context) error {
	var req dto.SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	taskID := c.Param("id")
	if err := validators.ValidateSubmitReviewRequest(taskID, &req); err != nil {
		return fail(err)
	}

	submission, err := h.settlement.SubmitReview(c.Request().Context(), actor(c), taskID, req.OptionID)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusCreated, dto.NewSubmissionResponse(submission))
}

func (h *Handler) Balance(c echo.Context) error {
	worker, err := h.settlement.GetWorker(c.Request().Context(), actor(c))
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewWorkerResponse(worker))
}

func (h *Handler) LockPayout(c echo.Context) error {
	var req dto.PayoutLockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	amount, err := validators.ValidatePayoutLockRequest(&req)
	if err != nil {
		return fail(err)
	}

	worker, err := h.settlement.RequestPayoutLock(c.Request().Context(), actor(c), amount)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewWorkerResponse(worker))
}

func (h *Handler) ConfirmPayout(c echo.Context) error {
	var req dto.ConfirmPayoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	cmd, err := validators.ValidateConfirmPayoutRequest(actor(c), &req)
	if err != nil {
		return fail(err)
	}

	worker, err := h.settlement.ConfirmPayout(c.Request().Context(), cmd)
	if err != nil {
		return fail(err)
	}
	return ok(c, http.StatusOK, dto.NewWorkerResponse(worker))
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "ok",
		"unit_price": payments.FormatAmount(h.settlement.UnitPrice()),
	})
}
