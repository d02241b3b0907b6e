package handlers

import (
	"net/http"
	"strconv"

	"shariahaudit-backend/search"

	"github.com/gin-gonic/gin"
)

// StandardsHandler handles HTTP requests for standards lookup
type StandardsHandler struct {
	agent   *search.Agent
	enabled bool
}

// NewStandardsHandler creates a new standards handler. When disabled, every
// endpoint answers 400 rather than pretending the agent is reachable.
func NewStandardsHandler(agent *search.Agent, enabled bool) *StandardsHandler {
	return &StandardsHandler{agent: agent, enabled: enabled}
}

func (h *StandardsHandler) disabled(c *gin.Context) bool {
	if h.enabled && h.agent != nil {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "SEARCH_DISABLED",
			"message": "Standards search is not enabled",
		},
	})
	return true
}

// SearchStandards handles GET /api/search-standards
func (h *StandardsHandler) SearchStandards(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "query is required",
			},
		})
		return
	}

	maxResults := 3
	if raw := c.Query("max_results"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxResults = n
		}
	}

	results := h.agent.SearchStandards(c.Request.Context(), query, maxResults)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}

// StandardDetails handles GET /api/standard-details
func (h *StandardsHandler) StandardDetails(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "reference is required",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"detail":  h.agent.StandardDetails(reference),
	})
}

// ApplicableStandards handles GET /api/applicable-standards
func (h *StandardsHandler) ApplicableStandards(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	productType := c.Query("product_type")
	if productType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "product_type is required",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"standards": h.agent.ApplicableStandards(productType),
	})
}
