package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finadvisor/assessment-api/internal/api/metrics"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// SubmitForm merges the submitted answers into the caller's profile.
//
// @Summary      Submit questionnaire answers
// @Description  Fields that are absent or null keep their stored value.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Any subset of questionnaire fields"
// @Success      200   {object}  submitFormResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      503   {object}  map[string]interface{}
// @Router       /submit-form [post]
func (h *ProfileHandler) SubmitForm(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProfileSubmissionsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	profile, err := h.profileService.Submit(c.Request().Context(), userID, req.toFields())
	if err != nil {
		metrics.ProfileSubmissionsTotal.WithLabelValues(outcomeOf(err)).Inc()
		return err
	}
	metrics.ProfileSubmissionsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, submitFormResponse{
		Msg:      "Form data saved successfully",
		FormData: toProfileResponse(profile),
	})
}

// GetFormData returns the caller's stored questionnaire.
//
// @Summary      Stored questionnaire
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  formDataResponse
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /user-form-data [get]
func (h *ProfileHandler) GetFormData(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, formDataResponse{FormData: toProfileResponse(profile)})
}

// Summary returns the dashboard totals computed from the stored questionnaire.
//
// @Summary      Financial summary
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /user-financial-summary [get]
func (h *ProfileHandler) Summary(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.profileService.Summary(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}
