package service

import (
	"context"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/calculator"
	"github.com/mmynk/pennyworth/pkg/api"
)

// WellnessService implements the Connect WellnessService.
type WellnessService struct{}

// NewWellnessService creates a new WellnessService.
func NewWellnessService() *WellnessService {
	return &WellnessService{}
}

// Calculate computes the wellness ratios for one monthly snapshot.
func (s *WellnessService) Calculate(ctx context.Context, req *connect.Request[api.CalculateWellnessRequest]) (*connect.Response[api.CalculateWellnessResponse], error) {
	w, err := calculator.CalculateWellness(calculator.Snapshot{
		Income:   req.Msg.Income,
		Savings:  req.Msg.Savings,
		Debt:     req.Msg.Debt,
		Expenses: req.Msg.Expenses,
	})
	if err != nil {
		slog.Warn("CalculateWellness failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resp := &api.CalculateWellnessResponse{
		DebtToIncome:        w.DebtToIncome,
		SavingsRate:         w.SavingsRate,
		EmergencyFundMonths: w.EmergencyFundMonths,
		DebtToIncomeRating:  string(w.DebtToIncomeRating),
		SavingsRateRating:   string(w.SavingsRateRating),
		EmergencyFundRating: string(w.EmergencyFundRating),
		MonthlySavings:      w.MonthlySavings,
		AnnualSavings:       w.AnnualSavings,
		Projection:          w.Projection,
	}
	// JSON has no infinity
	if math.IsInf(w.EmergencyFundMonths, 1) {
		resp.EmergencyFundMonths = 0
		resp.EmergencyFundUnbounded = true
	}
	for _, slice := range w.Allocation {
		resp.Allocation = append(resp.Allocation, api.ChartSlice{Label: slice.Label, Amount: slice.Amount})
	}

	return connect.NewResponse(resp), nil
}

// TaxService implements the Connect TaxService.
type TaxService struct{}

// NewTaxService creates a new TaxService.
func NewTaxService() *TaxService {
	return &TaxService{}
}

// Estimate applies deductions and a flat rate, and optionally the
// progressive brackets, to an annual income.
func (s *TaxService) Estimate(ctx context.Context, req *connect.Request[api.EstimateTaxRequest]) (*connect.Response[api.EstimateTaxResponse], error) {
	est, err := calculator.EstimateTax(calculator.TaxInput{
		AnnualIncome:  req.Msg.AnnualIncome,
		TaxRate:       req.Msg.TaxRate,
		TaxCredits:    req.Msg.TaxCredits,
		Deductions:    req.Msg.Deductions,
		ApplyBrackets: req.Msg.ApplyBrackets,
	})
	if err != nil {
		slog.Warn("EstimateTax failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resp := &api.EstimateTaxResponse{
		TotalDeductions: est.TotalDeductions,
		TaxableIncome:   est.TaxableIncome,
		Liability:       est.Liability,
		ProgressiveTax:  est.ProgressiveTax,
		Breakdown:       make([]api.CategorySaving, 0, len(est.Breakdown)),
	}
	if est.HasDeductions {
		savings := est.SavingsFromDeductions
		resp.SavingsFromDeductions = &savings
	}
	for _, b := range est.Breakdown {
		resp.Breakdown = append(resp.Breakdown, api.CategorySaving{Category: b.Category, Amount: b.Amount})
	}

	return connect.NewResponse(resp), nil
}

// ListDeductionCategories returns the default deduction categories.
func (s *TaxService) ListDeductionCategories(ctx context.Context, req *connect.Request[api.ListDeductionCategoriesRequest]) (*connect.Response[api.ListDeductionCategoriesResponse], error) {
	categories := append([]string(nil), calculator.DefaultDeductionCategories...)
	return connect.NewResponse(&api.ListDeductionCategoriesResponse{Categories: categories}), nil
}
