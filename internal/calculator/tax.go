package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// MaxTaxRate is the highest effective rate accepted, in percent.
const MaxTaxRate = 50.0

// DefaultDeductionCategories lists the business expense buckets offered by default.
var DefaultDeductionCategories = []string{
	"Operational Costs",
	"Salaries and Wages",
	"Rent",
	"Supplies",
	"Utilities",
}

// Bracket is one band of a progressive schedule. An unbounded bracket has
// Unbounded set and Upper ignored.
type Bracket struct {
	Lower     decimal.Decimal
	Upper     decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal // fraction, e.g. 0.10
}

// ProgressiveBrackets is the fixed seven-bracket schedule.
var ProgressiveBrackets = []Bracket{
	{Lower: decimal.NewFromInt(0), Upper: decimal.NewFromInt(9950), Rate: decimal.RequireFromString("0.10")},
	{Lower: decimal.NewFromInt(9950), Upper: decimal.NewFromInt(40525), Rate: decimal.RequireFromString("0.12")},
	{Lower: decimal.NewFromInt(40525), Upper: decimal.NewFromInt(86375), Rate: decimal.RequireFromString("0.22")},
	{Lower: decimal.NewFromInt(86375), Upper: decimal.NewFromInt(164925), Rate: decimal.RequireFromString("0.24")},
	{Lower: decimal.NewFromInt(164925), Upper: decimal.NewFromInt(209425), Rate: decimal.RequireFromString("0.32")},
	{Lower: decimal.NewFromInt(209425), Upper: decimal.NewFromInt(523600), Rate: decimal.RequireFromString("0.35")},
	{Lower: decimal.NewFromInt(523600), Unbounded: true, Rate: decimal.RequireFromString("0.37")},
}

// TaxInput is the validated input of the deduction estimator.
type TaxInput struct {
	AnnualIncome float64
	TaxRate      float64 // percent, 0..MaxTaxRate
	TaxCredits   float64
	Deductions   map[string]float64
	// ApplyBrackets additionally computes the progressive bracket tax on
	// the taxable income.
	ApplyBrackets bool
}

// Validate applies the type/range checks the input form would enforce.
func (in TaxInput) Validate() error {
	if in.AnnualIncome < 0 || math.IsNaN(in.AnnualIncome) {
		return fmt.Errorf("%w: annual income must be non-negative", ErrInvalidAmount)
	}
	if in.TaxCredits < 0 || math.IsNaN(in.TaxCredits) {
		return fmt.Errorf("%w: tax credits must be non-negative", ErrInvalidAmount)
	}
	if in.TaxRate < 0 || in.TaxRate > MaxTaxRate || math.IsNaN(in.TaxRate) {
		return fmt.Errorf("%w: %v is outside [0, %v]", ErrInvalidRate, in.TaxRate, MaxTaxRate)
	}
	for name, amount := range in.Deductions {
		if amount < 0 || math.IsNaN(amount) {
			return fmt.Errorf("%w: deduction %q must be non-negative", ErrInvalidAmount, name)
		}
	}
	return nil
}

// CategorySaving is the tax saved by one deduction category.
type CategorySaving struct {
	Category string
	Amount   float64
}

// TaxEstimate is the result of EstimateTax. Amounts are rounded to cents.
type TaxEstimate struct {
	TotalDeductions float64
	TaxableIncome   float64
	Liability       float64
	// SavingsFromDeductions is only meaningful when HasDeductions is set.
	SavingsFromDeductions float64
	HasDeductions         bool
	Breakdown             []CategorySaving // descending by amount
	// ProgressiveTax is set when brackets were requested.
	ProgressiveTax *float64
}

// EstimateTax computes taxable income, liability and per-category savings.
func EstimateTax(in TaxInput) (*TaxEstimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	income := decimal.NewFromFloat(in.AnnualIncome)
	rate := decimal.NewFromFloat(in.TaxRate).Div(decimal.NewFromInt(100))
	credits := decimal.NewFromFloat(in.TaxCredits)

	total := decimal.Zero
	breakdown := make([]CategorySaving, 0, len(in.Deductions))
	for name, amount := range in.Deductions {
		d := decimal.NewFromFloat(amount)
		total = total.Add(d)
		breakdown = append(breakdown, CategorySaving{
			Category: name,
			Amount:   d.Mul(rate).Round(2).InexactFloat64(),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	taxable := decimal.Max(income.Sub(total), decimal.Zero)
	liability := decimal.Max(taxable.Mul(rate).Sub(credits), decimal.Zero)

	est := &TaxEstimate{
		TotalDeductions: total.Round(2).InexactFloat64(),
		TaxableIncome:   taxable.Round(2).InexactFloat64(),
		Liability:       liability.Round(2).InexactFloat64(),
		HasDeductions:   total.IsPositive(),
		Breakdown:       breakdown,
	}
	if est.HasDeductions {
		est.SavingsFromDeductions = income.Mul(rate).Sub(liability).Round(2).InexactFloat64()
	}
	if in.ApplyBrackets {
		progressive := BracketTax(taxable).Round(2).InexactFloat64()
		est.ProgressiveTax = &progressive
	}

	return est, nil
}

// BracketTax applies ProgressiveBrackets to income by marginal accumulation.
// A bracket contributes only while income is strictly above its lower bound.
func BracketTax(income decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range ProgressiveBrackets {
		if !income.GreaterThan(b.Lower) {
			break
		}
		top := income
		if !b.Unbounded {
			top = decimal.Min(b.Upper, income)
		}
		tax = tax.Add(top.Sub(b.Lower).Mul(b.Rate))
	}
	return tax
}
