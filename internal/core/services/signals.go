package services

import (
	"regexp"
	"strings"
)

// Lead indicator categories. A chunk's signal is the fraction of
// categories it matches, which keeps the value in [0, 1] and makes the
// rule fully deterministic: no generated text ever feeds the number.
const (
	IndicatorMonetary    = "monetary_amount"
	IndicatorDealTerms   = "deal_terms"
	IndicatorInstruments = "instruments"
	IndicatorFinHealth   = "financial_health"
)

// amountPattern matches concrete monetary amounts such as "$5,000,000",
// "€2.5 million" or "USD 10m". Concrete figures are the strongest lead
// indicator in the source corpus.
var amountPattern = regexp.MustCompile(
	`(?i)([$€£]|usd|eur|gbp)\s?\d[\d,]*(\.\d+)?\s?(million|billion|thousand|[mk]\b|bn\b)?` +
		`|\b\d[\d,]*(\.\d+)?\s?(million|billion)\b`)

// indicatorCategories is evaluated in a fixed order so the indicator
// list in a rationale is reproducible byte-for-byte.
var indicatorCategories = []struct {
	name  string
	terms []string
}{
	{IndicatorDealTerms, []string{
		"loan", "credit line", "line of credit", "financing", "acquisition",
		"merger", "buyout", "investment", "funding", "valuation",
		"term sheet", "series a", "series b", "due diligence",
	}},
	{IndicatorInstruments, []string{
		"agreement", "contract", "covenant", "indemnification", "warranty",
		"equity", "shares", "stock purchase", "bond", "portfolio",
		"distribution agreement", "consulting agreement",
	}},
	{IndicatorFinHealth, []string{
		"revenue", "profit", "margin", "cash flow", "ebitda",
		"balance sheet", "income statement", "late payment", "default",
		"delinquent", "credit risk", "growth", "earnings",
	}},
}

// totalCategories counts the term categories plus the monetary pattern.
var totalCategories = len(indicatorCategories) + 1

// SignalExtractor derives a per-chunk lead signal from text.
// The zero value is not usable; construct with NewSignalExtractor.
type SignalExtractor struct{}

// NewSignalExtractor creates the deterministic signal extractor.
func NewSignalExtractor() *SignalExtractor {
	return &SignalExtractor{}
}

// Extract returns the signal value in [0, 1] and the matched indicator
// categories, in their fixed evaluation order.
func (e *SignalExtractor) Extract(text string) (float64, []string) {
	lower := strings.ToLower(text)

	var matched []string
	if amountPattern.MatchString(text) {
		matched = append(matched, IndicatorMonetary)
	}
	for _, cat := range indicatorCategories {
		for _, term := range cat.terms {
			if strings.Contains(lower, term) {
				matched = append(matched, cat.name)
				break
			}
		}
	}

	return float64(len(matched)) / float64(totalCategories), matched
}
