package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellness/planner/internal/completion"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
)

// statusClientClosedRequest is written when the caller went away before a
// generation finished. Nobody reads it; it keeps request logs honest.
const statusClientClosedRequest = 499

// GenerationMeta describes how a generated document was produced.
type GenerationMeta struct {
	Model     string            `json:"model"`
	Source    domain.PlanSource `json:"source"`
	Timestamp time.Time         `json:"timestamp"`
	Reason    string            `json:"reason,omitempty"`
}

func newMeta(model string, source domain.PlanSource, reason error) GenerationMeta {
	m := GenerationMeta{Model: model, Source: source, Timestamp: time.Now().UTC()}
	if reason != nil {
		m.Reason = reason.Error()
	}
	return m
}

// abortGeneration maps errors that escape the generator. Everything else
// was already turned into a fallback document.
func abortGeneration(c *gin.Context, log *logger.Logger, err error, what string) {
	switch {
	case errors.Is(err, completion.ErrNotConfigured), errors.Is(err, completion.ErrUnknownProvider):
		log.Error("Completion provider not configured", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Completion API key not configured",
			"details": err.Error(),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		log.Error("Generation failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate " + what,
			"details": err.Error(),
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}
