package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finadvisor/assessment-api/internal/api/metrics"
	"github.com/finadvisor/assessment-api/internal/core/domain"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

const (
	kindInvestment = "investment"
	kindGoal       = "goal"
)

type AdviceHandler struct {
	adviceService ports.AdviceService
}

func NewAdviceHandler(adviceService ports.AdviceService) *AdviceHandler {
	return &AdviceHandler{adviceService: adviceService}
}

// InvestmentAdvice generates tailored advice for one investment option.
//
// @Summary      Investment advice
// @Description  Works without a stored questionnaire; formData overrides stored answers for this call only.
// @Tags         advice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Investment option and optional answers"
// @Success      200   {object}  adviceResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      429   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Failure      503   {object}  map[string]interface{}
// @Router       /api/investment-advice [post]
func (h *AdviceHandler) InvestmentAdvice(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req adviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start := time.Now()
	advice, err := h.adviceService.InvestmentAdvice(c.Request().Context(), ports.AdviceRequest{
		UserID:    userID,
		Category:  domain.NormalizeCategory(req.InvestmentPreference),
		Overrides: overridesOf(req.FormData),
	})
	observeAdvice(kindInvestment, start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adviceResponse{Advice: advice})
}

// GoalAnalysis estimates progress towards the caller's goals.
//
// @Summary      Goal completion estimate
// @Tags         advice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      goalAnalysisRequest  false  "Optional answers"
// @Success      200   {object}  goalAnalysisResponse
// @Failure      401   {object}  map[string]interface{}
// @Failure      429   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Failure      503   {object}  map[string]interface{}
// @Router       /api/goal-analysis [post]
func (h *AdviceHandler) GoalAnalysis(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req goalAnalysisRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
	}

	start := time.Now()
	analysis, err := h.adviceService.GoalAnalysis(c.Request().Context(), ports.AdviceRequest{
		UserID:    userID,
		Overrides: overridesOf(req.FormData),
	})
	observeAdvice(kindGoal, start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, goalAnalysisResponse{Analysis: analysis})
}

func observeAdvice(kind string, start time.Time, err error) {
	metrics.AdviceRequestsTotal.WithLabelValues(kind, outcomeOf(err)).Inc()
	if errors.Is(err, domain.ErrQuotaExceeded) {
		metrics.AdviceQuotaRejectionsTotal.WithLabelValues(kind).Inc()
		return
	}
	metrics.AdviceDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
