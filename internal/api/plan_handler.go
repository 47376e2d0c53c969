package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
	"wellness/planner/internal/service"
)

// PlanHandler serves the authenticated, persisted plan endpoints.
type PlanHandler struct {
	plans  service.PlanService
	logger *logger.Logger
}

func NewPlanHandler(plans service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{plans: plans, logger: log.With("handler", "PlanHandler")}
}

// TwoDayPlanRequest is optional; an empty body generates with defaults.
type TwoDayPlanRequest struct {
	Regenerate      bool                    `json:"regenerate"`
	HealthScore     *int                    `json:"healthScore"`
	Analysis        string                  `json:"analysis"`
	Recommendations []string                `json:"recommendations"`
	UserInput       string                  `json:"userInput"`
	VoiceTranscript string                  `json:"voiceTranscript"`
	UploadedFiles   []planning.UploadedFile `json:"uploadedFiles"`
}

// GenerateTwoDay godoc
// @Summary Generate (or reuse) the caller's two-day plan
// @Tags Plans
// @Security BearerAuth
// @Router /plans/two-day [post]
func (h *PlanHandler) GenerateTwoDay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	var req TwoDayPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	res, err := h.plans.GenerateTwoDay(c.Request.Context(), userID, service.TwoDayRequest{
		Regenerate: req.Regenerate,
		Context: planning.PromptContext{
			HealthScore:     req.HealthScore,
			Analysis:        req.Analysis,
			Recommendations: req.Recommendations,
			UserInput:       req.UserInput,
			VoiceTranscript: req.VoiceTranscript,
			UploadedFiles:   req.UploadedFiles,
		},
	})
	if err != nil {
		abortGeneration(c, h.logger, err, "two-day plan")
		return
	}

	var reason error
	if res.Reason != "" {
		reason = errors.New(res.Reason)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"plan":     res.Record,
		"reused":   res.Reused,
		"fallback": res.StoredLocally,
		"meta":     newMeta(res.Model, res.Source, reason),
	})
}

// SelectPlan persists a plan option as the caller's active plan.
func (h *PlanHandler) SelectPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	var option domain.PlanOption
	if err := c.ShouldBindJSON(&option); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.plans.Select(c.Request.Context(), userID, option)
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"plan":     res.Record,
		"fallback": res.StoredLocally,
	})
}

func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	rec, err := h.plans.GetActive(c.Request.Context(), userID)
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": rec})
}

func (h *PlanHandler) ListMyPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	h.list(c, userID)
}

// ListUserPlans is the admin view of any user's plan history.
func (h *PlanHandler) ListUserPlans(c *gin.Context) {
	h.list(c, c.Param("userId"))
}

func (h *PlanHandler) list(c *gin.Context, userID string) {
	plans, err := h.plans.List(c.Request.Context(), userID)
	if err != nil {
		h.planError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.PlanRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": plans})
}

// ExportPlan uploads the plan as JSON and returns a presigned download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	out, err := h.plans.Export(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		h.planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "export": out})
}

func (h *PlanHandler) planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExportFailed):
		h.logger.Error("Plan export failed", "error", err)
		abortWithError(c, http.StatusBadGateway, "Could not export plan.")
	default:
		h.logger.Error("Plan request failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
