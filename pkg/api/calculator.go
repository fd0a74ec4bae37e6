// Package api defines the request and response messages of the
// pennyworth.v1 services. Messages are plain structs carried as JSON.
package api

// CalculateWellnessRequest is a monthly financial snapshot.
type CalculateWellnessRequest struct {
	Income   float64 `json:"income"`
	Savings  float64 `json:"savings"`
	Debt     float64 `json:"debt"`
	Expenses float64 `json:"expenses"`
}

// ChartSlice is one labeled amount.
type ChartSlice struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// CalculateWellnessResponse holds the ratios and chart data. When savings
// exist but expenses are zero the emergency fund is unbounded and
// EmergencyFundMonths is 0.
type CalculateWellnessResponse struct {
	DebtToIncome           float64 `json:"debt_to_income"`
	SavingsRate            float64 `json:"savings_rate"`
	EmergencyFundMonths    float64 `json:"emergency_fund_months"`
	EmergencyFundUnbounded bool    `json:"emergency_fund_unbounded"`

	DebtToIncomeRating  string `json:"debt_to_income_rating"`
	SavingsRateRating   string `json:"savings_rate_rating"`
	EmergencyFundRating string `json:"emergency_fund_rating"`

	Allocation     []ChartSlice `json:"allocation"`
	MonthlySavings float64      `json:"monthly_savings"`
	AnnualSavings  float64      `json:"annual_savings"`
	Projection     []float64    `json:"projection"`
}

// EstimateTaxRequest is the deduction estimator input. TaxRate is a
// percentage in [0, 50].
type EstimateTaxRequest struct {
	AnnualIncome  float64            `json:"annual_income"`
	TaxRate       float64            `json:"tax_rate"`
	TaxCredits    float64            `json:"tax_credits"`
	Deductions    map[string]float64 `json:"deductions,omitempty"`
	ApplyBrackets bool               `json:"apply_brackets,omitempty"`
}

// CategorySaving is the tax saved by one deduction category.
type CategorySaving struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// EstimateTaxResponse is the estimate, rounded to cents.
type EstimateTaxResponse struct {
	TotalDeductions       float64          `json:"total_deductions"`
	TaxableIncome         float64          `json:"taxable_income"`
	Liability             float64          `json:"liability"`
	SavingsFromDeductions *float64         `json:"savings_from_deductions,omitempty"`
	Breakdown             []CategorySaving `json:"breakdown"`
	ProgressiveTax        *float64         `json:"progressive_tax,omitempty"`
}

// ListDeductionCategoriesRequest is empty.
type ListDeductionCategoriesRequest struct{}

// ListDeductionCategoriesResponse lists the default categories.
type ListDeductionCategoriesResponse struct {
	Categories []string `json:"categories"`
}
