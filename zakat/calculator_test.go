package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleBalanceSheet() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Cash":                   dec(120000),
		"Accounts Receivable":    dec(350000),
		"Inventory":              dec(485000),
		"Short Term Investments": dec(275000),

		"Accounts Payable": dec(280000),
		"Accrued Expenses": dec(95000),
		"Taxes Payable":    dec(150000),
		"Short Term Debt":  dec(75000),

		"Property Plant and Equipment": dec(1200000),
		"Long Term Loans":              dec(500000),
		"Share Capital":                dec(900000),
	}
}

func TestNisabValue(t *testing.T) {
	t.Run("Should use the gold threshold when it is higher", func(t *testing.T) {
		c := NewCalculator(DefaultMetalPrices())
		// 85g * 70 = 5950 vs 595g * 0.85 = 505.75
		assert.True(t, c.NisabValue().Equal(dec(5950)))
	})

	t.Run("Should use the silver threshold when it is higher", func(t *testing.T) {
		c := NewCalculator(MetalPrices{
			GoldPerGram:   dec(1),
			SilverPerGram: dec(2),
		})
		// 85 vs 1190
		assert.True(t, c.NisabValue().Equal(dec(1190)))
	})
}

func TestClassifyAccounts(t *testing.T) {
	c := NewCalculator(DefaultMetalPrices())

	t.Run("Should bucket accounts by keyword", func(t *testing.T) {
		classified := c.ClassifyAccounts(sampleBalanceSheet())

		assert.Len(t, classified[ClassZakatableAsset], 4)
		assert.Len(t, classified[ClassDeductibleLiability], 4)
		assert.Len(t, classified[ClassNonZakatableAsset], 1)
		assert.Len(t, classified[ClassNonDeductibleLiability], 2)
		assert.Empty(t, classified[ClassUnclassified])

		assert.Contains(t, classified[ClassZakatableAsset], "Accounts Receivable")
		assert.Contains(t, classified[ClassDeductibleLiability], "Accounts Payable")
		assert.Contains(t, classified[ClassNonDeductibleLiability], "Long Term Loans")
	})

	t.Run("Should report unmatched accounts as unclassified", func(t *testing.T) {
		classified := c.ClassifyAccounts(map[string]decimal.Decimal{
			"Mystery Item": dec(1000),
		})
		assert.Contains(t, classified[ClassUnclassified], "Mystery Item")
	})

	t.Run("Should be case-insensitive", func(t *testing.T) {
		classified := c.ClassifyAccounts(map[string]decimal.Decimal{
			"CASH ON HAND": dec(1000),
		})
		assert.Contains(t, classified[ClassZakatableAsset], "CASH ON HAND")
	})
}

func TestCalculate(t *testing.T) {
	c := NewCalculator(DefaultMetalPrices())

	t.Run("Should compute Zakat with the net asset method", func(t *testing.T) {
		calc := c.Calculate(sampleBalanceSheet())

		// 120000 + 350000 + 485000 + 275000
		assert.True(t, calc.TotalZakatableAssets.Equal(dec(1230000)), "zakatable: %s", calc.TotalZakatableAssets)
		// 280000 + 95000 + 150000 + 75000
		assert.True(t, calc.TotalDeductible.Equal(dec(600000)), "deductible: %s", calc.TotalDeductible)
		assert.True(t, calc.ZakatBase.Equal(dec(630000)), "base: %s", calc.ZakatBase)
		assert.True(t, calc.NisabValue.Equal(dec(5950)))
		assert.True(t, calc.ExceedsNisab)
		// 630000 * 2.5%
		assert.True(t, calc.ZakatAmount.Equal(dec(15750)), "amount: %s", calc.ZakatAmount)
		assert.NotEmpty(t, calc.CalculationDate)
	})

	t.Run("Should owe nothing below the nisab", func(t *testing.T) {
		calc := c.Calculate(map[string]decimal.Decimal{
			"Cash": dec(3000),
		})
		assert.False(t, calc.ExceedsNisab)
		assert.True(t, calc.ZakatAmount.IsZero())
	})

	t.Run("Should owe Zakat exactly at the nisab", func(t *testing.T) {
		calc := c.Calculate(map[string]decimal.Decimal{
			"Cash": dec(5950),
		})
		require.True(t, calc.ExceedsNisab)
		assert.True(t, calc.ZakatAmount.Equal(decimal.NewFromFloat(148.75)))
	})

	t.Run("Should handle an empty balance sheet", func(t *testing.T) {
		calc := c.Calculate(map[string]decimal.Decimal{})
		assert.True(t, calc.ZakatBase.IsZero())
		assert.False(t, calc.ExceedsNisab)
		assert.True(t, calc.ZakatAmount.IsZero())
	})
}
