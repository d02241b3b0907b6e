// Package zakat computes business Zakat per AAOIFI FAS 9 using the net
// asset method: zakatable assets minus deductible liabilities, compared
// against the nisab threshold, at a 2.5% rate.
package zakat

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FAS 9 parameters. Nisab is the larger of the gold and silver thresholds
// at current metal prices.
const (
	NisabGoldGrams   = 85
	NisabSilverGrams = 595
)

var zakatRate = decimal.NewFromFloat(0.025)

// MetalPrices carries per-gram prices used to value the nisab threshold.
type MetalPrices struct {
	GoldPerGram   decimal.Decimal
	SilverPerGram decimal.Decimal
}

// DefaultMetalPrices are static reference prices; a production deployment
// would refresh these from a market feed.
func DefaultMetalPrices() MetalPrices {
	return MetalPrices{
		GoldPerGram:   decimal.NewFromInt(70),
		SilverPerGram: decimal.NewFromFloat(0.85),
	}
}

// AccountClass is the FAS 9 classification of one balance sheet account.
type AccountClass string

const (
	ClassZakatableAsset         AccountClass = "zakatable_assets"
	ClassNonZakatableAsset      AccountClass = "non_zakatable_assets"
	ClassDeductibleLiability    AccountClass = "deductible_liabilities"
	ClassNonDeductibleLiability AccountClass = "non_deductible_liabilities"
	ClassUnclassified           AccountClass = "unclassified"
)

// classificationRule maps account-name keywords to a class, first match
// wins. Same pluggable shape as the audit severity/category rules.
type classificationRule struct {
	keywords []string
	class    AccountClass
}

var defaultClassificationRules = []classificationRule{
	{keywords: []string{"cash", "bank", "receivable", "inventory", "investment", "gold", "silver"}, class: ClassZakatableAsset},
	{keywords: []string{"property", "equipment", "building", "intangible", "goodwill"}, class: ClassNonZakatableAsset},
	{keywords: []string{"payable", "accrued", "tax", "short term"}, class: ClassDeductibleLiability},
	{keywords: []string{"loan", "long term", "capital"}, class: ClassNonDeductibleLiability},
}

// Calculation is the full result of a Zakat computation.
type Calculation struct {
	ClassifiedAccounts   map[AccountClass]map[string]decimal.Decimal `json:"classified_accounts"`
	TotalZakatableAssets decimal.Decimal                             `json:"total_zakatable_assets"`
	TotalDeductible      decimal.Decimal                             `json:"total_deductible_liabilities"`
	ZakatBase            decimal.Decimal                             `json:"zakat_base"`
	NisabValue           decimal.Decimal                             `json:"nisab_value"`
	ZakatRate            decimal.Decimal                             `json:"zakat_rate"`
	ExceedsNisab         bool                                        `json:"exceeds_nisab"`
	ZakatAmount          decimal.Decimal                             `json:"zakat_amount"`
	CalculationDate      string                                      `json:"calculation_date"`
}

// Calculator classifies balance sheet accounts and computes the amount due.
type Calculator struct {
	prices MetalPrices
	rules  []classificationRule
	now    func() time.Time
}

func NewCalculator(prices MetalPrices) *Calculator {
	return &Calculator{
		prices: prices,
		rules:  defaultClassificationRules,
		now:    time.Now,
	}
}

// NisabValue is the wealth threshold below which no Zakat is due.
func (c *Calculator) NisabValue() decimal.Decimal {
	gold := decimal.NewFromInt(NisabGoldGrams).Mul(c.prices.GoldPerGram)
	silver := decimal.NewFromInt(NisabSilverGrams).Mul(c.prices.SilverPerGram)
	if gold.GreaterThanOrEqual(silver) {
		return gold
	}
	return silver
}

// ClassifyAccounts buckets each balance sheet account by keyword matching
// on the account name. Accounts matching no rule are reported as
// unclassified rather than silently dropped.
func (c *Calculator) ClassifyAccounts(balanceSheet map[string]decimal.Decimal) map[AccountClass]map[string]decimal.Decimal {
	classified := map[AccountClass]map[string]decimal.Decimal{
		ClassZakatableAsset:         {},
		ClassNonZakatableAsset:      {},
		ClassDeductibleLiability:    {},
		ClassNonDeductibleLiability: {},
		ClassUnclassified:           {},
	}

	for account, value := range balanceSheet {
		classified[c.classify(account)][account] = value
	}
	return classified
}

func (c *Calculator) classify(account string) AccountClass {
	lower := strings.ToLower(account)
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.class
			}
		}
	}
	return ClassUnclassified
}

// Calculate runs the net asset method over a balance sheet.
func (c *Calculator) Calculate(balanceSheet map[string]decimal.Decimal) Calculation {
	classified := c.ClassifyAccounts(balanceSheet)

	totalZakatable := sumValues(classified[ClassZakatableAsset])
	totalDeductible := sumValues(classified[ClassDeductibleLiability])
	base := totalZakatable.Sub(totalDeductible)
	nisab := c.NisabValue()

	calc := Calculation{
		ClassifiedAccounts:   classified,
		TotalZakatableAssets: totalZakatable,
		TotalDeductible:      totalDeductible,
		ZakatBase:            base,
		NisabValue:           nisab,
		ZakatRate:            zakatRate,
		CalculationDate:      c.now().Format("2006-01-02"),
		ZakatAmount:          decimal.Zero,
	}

	if base.GreaterThanOrEqual(nisab) {
		calc.ExceedsNisab = true
		calc.ZakatAmount = base.Mul(zakatRate)
	}
	return calc
}

func sumValues(accounts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range accounts {
		total = total.Add(v)
	}
	return total
}
