package handler

import (
	"github.com/gin-gonic/gin"

	appadvisor "github.com/aqari/backend/internal/application/advisor"
)

// AdvisorHandler handles the portfolio advice endpoint
type AdvisorHandler struct {
	BaseHandler
	advisorService *appadvisor.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(advisorService *appadvisor.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// GetAdvice returns free-text advice for the owner's portfolio. A failing
// generator degrades to canned advice, never to an error.
func (h *AdvisorHandler) GetAdvice(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	advice, err := h.advisorService.GetAdvice(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, advice)
}
