package calculator

import (
	"fmt"
	"math"
)

// ProjectionMonths is the horizon of the savings projection (5 years).
const ProjectionMonths = 60

// Snapshot is one person's monthly financial picture.
type Snapshot struct {
	Income   float64 // monthly
	Savings  float64 // total
	Debt     float64 // monthly payments
	Expenses float64 // monthly
}

// Validate rejects negative amounts.
func (s Snapshot) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"income", s.Income},
		{"savings", s.Savings},
		{"debt", s.Debt},
		{"expenses", s.Expenses},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalidAmount, f.name)
		}
	}
	return nil
}

// Rating is a coarse health label for one ratio. Each ratio has its own
// label set.
type Rating string

// Debt-to-income labels.
const (
	RatingHealthy  Rating = "healthy"
	RatingModerate Rating = "moderate"
	RatingHigh     Rating = "high"
)

// Savings-rate labels.
const (
	RatingStrong Rating = "strong"
	RatingDecent Rating = "decent"
	RatingLow    Rating = "low"
)

// Emergency-fund labels. RatingLow is shared with the savings rate.
const (
	RatingExcellent          Rating = "excellent"
	RatingSolid              Rating = "solid"
	RatingConsiderIncreasing Rating = "consider_increasing"
)

// Slice is one labeled value of a chart dataset.
type Slice struct {
	Label  string
	Amount float64
}

// Wellness holds the derived ratios and chart data for a Snapshot.
type Wellness struct {
	DebtToIncome        float64 // percent
	SavingsRate         float64 // percent of annual income
	EmergencyFundMonths float64 // +Inf when savings exist but expenses are zero

	DebtToIncomeRating  Rating
	SavingsRateRating   Rating
	EmergencyFundRating Rating

	Allocation     []Slice
	MonthlySavings float64
	AnnualSavings  float64
	Projection     []float64 // cumulative savings after month i+1
}

// DebtToIncome returns debt/income as a percentage, or 0 when income is 0.
func DebtToIncome(income, debt float64) float64 {
	if income > 0 {
		return debt / income * 100
	}
	return 0
}

// SavingsRate returns savings over a year of income as a percentage, or 0
// when income is 0.
func SavingsRate(income, savings float64) float64 {
	if income > 0 {
		return savings / (income * 12) * 100
	}
	return 0
}

// EmergencyFundMonths returns how many months of expenses savings cover.
// With zero expenses it is +Inf if there are savings and 0 otherwise.
func EmergencyFundMonths(savings, expenses float64) float64 {
	if expenses > 0 {
		return savings / expenses
	}
	if savings > 0 {
		return math.Inf(1)
	}
	return 0
}

// CalculateWellness computes all ratios, ratings and chart datasets.
func CalculateWellness(s Snapshot) (*Wellness, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	w := &Wellness{
		DebtToIncome:        DebtToIncome(s.Income, s.Debt),
		SavingsRate:         SavingsRate(s.Income, s.Savings),
		EmergencyFundMonths: EmergencyFundMonths(s.Savings, s.Expenses),
	}
	w.DebtToIncomeRating = rateDebtToIncome(w.DebtToIncome)
	w.SavingsRateRating = rateSavingsRate(w.SavingsRate)
	w.EmergencyFundRating = rateEmergencyFund(w.EmergencyFundMonths)

	remaining := math.Max(s.Income-(s.Debt+s.Expenses), 0)
	w.Allocation = []Slice{
		{Label: "Debt", Amount: s.Debt},
		{Label: "Expenses", Amount: s.Expenses},
		{Label: "Remaining Income", Amount: remaining},
	}
	w.MonthlySavings = remaining
	w.AnnualSavings = remaining * 12

	w.Projection = make([]float64, ProjectionMonths)
	for i := range w.Projection {
		w.Projection[i] = float64(i+1) * remaining
	}

	return w, nil
}

// Under 15% is healthy, 15-36% moderate, above 36% high.
func rateDebtToIncome(pct float64) Rating {
	switch {
	case pct < 15:
		return RatingHealthy
	case pct <= 36:
		return RatingModerate
	default:
		return RatingHigh
	}
}

func rateSavingsRate(pct float64) Rating {
	switch {
	case pct >= 20:
		return RatingStrong
	case pct >= 10:
		return RatingDecent
	default:
		return RatingLow
	}
}

func rateEmergencyFund(months float64) Rating {
	switch {
	case math.IsInf(months, 1):
		return RatingExcellent
	case months >= 6:
		return RatingSolid
	case months >= 3:
		return RatingConsiderIncreasing
	default:
		return RatingLow
	}
}
