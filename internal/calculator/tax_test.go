package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBracketTax(t *testing.T) {
	tests := []struct {
		name   string
		income string
		want   string
	}{
		{name: "zero income", income: "0", want: "0"},
		{name: "first bracket boundary", income: "9950", want: "995"},
		{name: "inside first bracket", income: "5000", want: "500"},
		{name: "second bracket", income: "20000", want: "2201"},         // 995 + 10050*0.12
		{name: "third bracket boundary", income: "86375", want: "14751"}, // 995 + 3669 + 10087
		{name: "top bracket", income: "600000", want: "186072.25"},      // 157804.25 + 76400*0.37
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BracketTax(decimal.RequireFromString(tt.income))
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("BracketTax(%s) = %s, want %s", tt.income, got, want)
			}
		})
	}
}

func TestEstimateTax(t *testing.T) {
	tests := []struct {
		name         string
		input        TaxInput
		wantErr      error
		validateFunc func(t *testing.T, est *TaxEstimate)
	}{
		{
			name: "deductions and credits",
			input: TaxInput{
				AnnualIncome: 100000,
				TaxRate:      15,
				TaxCredits:   1000,
				Deductions: map[string]float64{
					"Rent":      12000,
					"Utilities": 3000,
					"Supplies":  5000,
				},
			},
			validateFunc: func(t *testing.T, est *TaxEstimate) {
				// taxable = 80000, liability = 12000 - 1000 = 11000
				if est.TotalDeductions != 20000 {
					t.Errorf("TotalDeductions = %v, want 20000", est.TotalDeductions)
				}
				if est.TaxableIncome != 80000 {
					t.Errorf("TaxableIncome = %v, want 80000", est.TaxableIncome)
				}
				if est.Liability != 11000 {
					t.Errorf("Liability = %v, want 11000", est.Liability)
				}
				// 100000*0.15 - 11000
				if !est.HasDeductions || est.SavingsFromDeductions != 4000 {
					t.Errorf("SavingsFromDeductions = %v (has=%v), want 4000", est.SavingsFromDeductions, est.HasDeductions)
				}
				wantOrder := []CategorySaving{{"Rent", 1800}, {"Supplies", 750}, {"Utilities", 450}}
				if len(est.Breakdown) != len(wantOrder) {
					t.Fatalf("breakdown = %v, want %v", est.Breakdown, wantOrder)
				}
				for i, want := range wantOrder {
					if est.Breakdown[i] != want {
						t.Errorf("breakdown[%d] = %+v, want %+v", i, est.Breakdown[i], want)
					}
				}
				if est.ProgressiveTax != nil {
					t.Errorf("ProgressiveTax = %v, want nil when brackets not requested", *est.ProgressiveTax)
				}
			},
		},
		{
			name: "deductions exceed income",
			input: TaxInput{
				AnnualIncome: 10000,
				TaxRate:      20,
				Deductions:   map[string]float64{"Rent": 25000},
			},
			validateFunc: func(t *testing.T, est *TaxEstimate) {
				if est.TaxableIncome != 0 {
					t.Errorf("TaxableIncome = %v, want 0", est.TaxableIncome)
				}
				if est.Liability != 0 {
					t.Errorf("Liability = %v, want 0", est.Liability)
				}
			},
		},
		{
			name: "credits exceed tax",
			input: TaxInput{
				AnnualIncome: 10000,
				TaxRate:      10,
				TaxCredits:   5000,
			},
			validateFunc: func(t *testing.T, est *TaxEstimate) {
				if est.Liability != 0 {
					t.Errorf("Liability = %v, want 0", est.Liability)
				}
				if est.HasDeductions {
					t.Error("HasDeductions should be false with no deductions")
				}
			},
		},
		{
			name: "progressive brackets on taxable income",
			input: TaxInput{
				AnnualIncome:  19950,
				TaxRate:       15,
				Deductions:    map[string]float64{"Rent": 10000},
				ApplyBrackets: true,
			},
			validateFunc: func(t *testing.T, est *TaxEstimate) {
				if est.ProgressiveTax == nil {
					t.Fatal("ProgressiveTax should be set")
				}
				if *est.ProgressiveTax != 995.00 {
					t.Errorf("ProgressiveTax = %v, want 995.00", *est.ProgressiveTax)
				}
			},
		},
		{
			name:    "rate above slider range",
			input:   TaxInput{AnnualIncome: 1000, TaxRate: 51},
			wantErr: ErrInvalidRate,
		},
		{
			name:    "negative deduction",
			input:   TaxInput{AnnualIncome: 1000, TaxRate: 10, Deductions: map[string]float64{"Rent": -5}},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := EstimateTax(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EstimateTax() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EstimateTax() unexpected error: %v", err)
			}
			tt.validateFunc(t, est)
		})
	}
}

func TestEstimateTax_TaxableNeverNegative(t *testing.T) {
	amounts := []float64{0, 0.01, 1, 9950, 50000, 1e6}
	for _, income := range amounts {
		for _, deduction := range amounts {
			est, err := EstimateTax(TaxInput{
				AnnualIncome: income,
				TaxRate:      25,
				Deductions:   map[string]float64{"Operational Costs": deduction},
			})
			if err != nil {
				t.Fatalf("EstimateTax(%v, %v) error: %v", income, deduction, err)
			}
			if est.TaxableIncome < 0 || est.Liability < 0 {
				t.Errorf("income=%v deduction=%v gave taxable=%v liability=%v", income, deduction, est.TaxableIncome, est.Liability)
			}
			if want := math.Max(income-deduction, 0); math.Abs(est.TaxableIncome-want) > 0.005 {
				t.Errorf("income=%v deduction=%v taxable=%v, want %v", income, deduction, est.TaxableIncome, want)
			}
		}
	}
}
