package handlers

import (
	"net/http"

	"shariahaudit-backend/zakat"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ZakatHandler handles HTTP requests for Zakat calculations
type ZakatHandler struct {
	calculator *zakat.Calculator
}

// NewZakatHandler creates a new zakat handler
func NewZakatHandler(calculator *zakat.Calculator) *ZakatHandler {
	return &ZakatHandler{calculator: calculator}
}

// ZakatRequest represents the request body for a Zakat calculation
type ZakatRequest struct {
	BalanceSheet map[string]decimal.Decimal `json:"balance_sheet"`
}

// Calculate handles POST /api/zakat
func (h *ZakatHandler) Calculate(c *gin.Context) {
	var req ZakatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.BalanceSheet) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "balance_sheet is required",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"calculation": h.calculator.Calculate(req.BalanceSheet),
	})
}
