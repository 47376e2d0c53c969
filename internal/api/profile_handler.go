package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/service"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMyProfile returns the caller's onboarding profile. A user who has not
// onboarded yet gets an empty one.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": p})
}

// PutMyProfile replaces the caller's profile.
func (h *ProfileHandler) PutMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	var p domain.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	p.UserID = userID

	saved, err := h.profiles.Update(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": saved})
}
