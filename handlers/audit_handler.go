package handlers

import (
	"net/http"

	"shariahaudit-backend/service"

	"github.com/gin-gonic/gin"
)

// AuditHandler handles HTTP requests for product audits
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// AuditRequest represents the request body for audit and extraction calls
type AuditRequest struct {
	ProductText string `json:"product_text"`
}

// ClauseRequest represents the request body for single-clause calls
type ClauseRequest struct {
	Clause string `json:"clause"`
}

// AuditProduct handles POST /api/audit
func (h *AuditHandler) AuditProduct(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductText == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "product_text is required",
			},
		})
		return
	}

	verdict, err := h.auditService.AuditProduct(c.Request.Context(), req.ProductText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUDIT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"verdict": verdict,
	})
}

// ExtractProduct handles POST /api/extract
func (h *AuditHandler) ExtractProduct(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductText == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "product_text is required",
			},
		})
		return
	}

	product, err := h.auditService.Extract(c.Request.Context(), req.ProductText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXTRACTION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// CheckClause handles POST /api/check-clause
func (h *AuditHandler) CheckClause(c *gin.Context) {
	var req ClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Clause == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "clause is required",
			},
		})
		return
	}

	assessment := h.auditService.CheckClause(c.Request.Context(), req.Clause)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": assessment,
	})
}

// FindSource handles POST /api/find-source
func (h *AuditHandler) FindSource(c *gin.Context) {
	var req ClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Clause == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "clause is required",
			},
		})
		return
	}

	ref := h.auditService.FindSource(c.Request.Context(), req.Clause)
	if ref == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"found":   false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"found":   true,
		"source":  ref,
	})
}
