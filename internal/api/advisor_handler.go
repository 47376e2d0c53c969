package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
	"wellness/planner/internal/service"
)

// AdvisorHandler serves the stateless generation endpoints. The caller
// sends the profile in the body; nothing is persisted.
type AdvisorHandler struct {
	advisor service.AdvisorService
	logger  *logger.Logger
}

func NewAdvisorHandler(advisor service.AdvisorService, log *logger.Logger) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, logger: log.With("handler", "AdvisorHandler")}
}

// GenerationRequest is the body shared by the generation endpoints. Each
// endpoint reads the fields its prompt needs.
type GenerationRequest struct {
	UserProfile     *domain.UserProfile     `json:"userProfile"`
	HealthScore     *int                    `json:"healthScore"`
	Analysis        string                  `json:"analysis"`
	Recommendations []string                `json:"recommendations"`
	UserInput       string                  `json:"userInput"`
	VoiceTranscript string                  `json:"voiceTranscript"`
	UploadedFiles   []planning.UploadedFile `json:"uploadedFiles"`
	Prompt          string                  `json:"prompt"`
	SelectedPlan    *domain.PlanOption      `json:"selectedPlan"`
}

func (r GenerationRequest) profile() domain.UserProfile {
	if r.UserProfile == nil {
		return domain.UserProfile{}
	}
	return *r.UserProfile
}

func (r GenerationRequest) promptContext() planning.PromptContext {
	return planning.PromptContext{
		HealthScore:     r.HealthScore,
		Analysis:        r.Analysis,
		Recommendations: r.Recommendations,
		UserInput:       r.UserInput,
		VoiceTranscript: r.VoiceTranscript,
		UploadedFiles:   r.UploadedFiles,
		SelectedPlan:    r.SelectedPlan,
		UserPrompt:      r.Prompt,
	}
}

func (h *AdvisorHandler) bind(c *gin.Context) (GenerationRequest, bool) {
	var req GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, false
	}
	return req, true
}

// HealthScoreProbe lets clients check the endpoint is reachable.
func (h *AdvisorHandler) HealthScoreProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Health score endpoint is working",
		"timestamp": time.Now().UTC(),
		"method":    http.MethodGet,
	})
}

// HealthScore handles POST /api/health-score.
func (h *AdvisorHandler) HealthScore(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.advisor.HealthScore(c.Request.Context(), req.profile(), req.promptContext())
	if err != nil {
		abortGeneration(c, h.logger, err, "health score")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"healthScore":     out.Document.HealthScore,
		"analysis":        out.Document.Analysis,
		"recommendations": out.Document.Recommendations,
		"meta":            newMeta(out.Model, out.Source, out.Reason),
	})
}

// HealthPlans handles POST /api/health-plans.
func (h *AdvisorHandler) HealthPlans(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.advisor.PlanOptions(c.Request.Context(), req.profile(), req.promptContext())
	if err != nil {
		abortGeneration(c, h.logger, err, "health plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   out.Document.Plans,
		"meta":    newMeta(out.Model, out.Source, out.Reason),
	})
}

// GeneratePlan handles POST /api/groq/generate-plan.
func (h *AdvisorHandler) GeneratePlan(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.advisor.SchedulePlans(c.Request.Context(), req.profile(), req.promptContext())
	if err != nil {
		abortGeneration(c, h.logger, err, "plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   out.Document.Plans,
		"meta":    newMeta(out.Model, out.Source, out.Reason),
	})
}

// PlanActivities handles POST /api/plan-activities.
func (h *AdvisorHandler) PlanActivities(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	if req.SelectedPlan == nil {
		badRequest(c, errors.New("selectedPlan is required"))
		return
	}
	out, err := h.advisor.PlanActivities(c.Request.Context(), req.profile(), req.promptContext())
	if err != nil {
		abortGeneration(c, h.logger, err, "activities")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"activities": out.Document.Activities,
		"meta":       newMeta(out.Model, out.Source, out.Reason),
	})
}
