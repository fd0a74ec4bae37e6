// Package predict holds the two regression models behind the income and
// tax-liability predictors.
package predict

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mmynk/pennyworth/internal/models"
)

var (
	// ErrNoHistory is returned when there are no rows to fit.
	ErrNoHistory = errors.New("no history rows to fit")
	// ErrFeatureCount is returned when a sample has the wrong number of features.
	ErrFeatureCount = errors.New("wrong number of features")
	// ErrNegativeInput is returned for negative predictor values.
	ErrNegativeInput = errors.New("predictor values must be non-negative")
)

// rcond is the relative singular value cutoff used to decide the rank of
// the centered design matrix.
const rcond = 1e-10

// LinearModel is an ordinary least squares fit with intercept.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64

	// Rank is the effective rank of the centered design matrix.
	Rank int
	// Samples is the number of rows the model was fit on.
	Samples int
}

// FitOLS fits y ~ x with an intercept. Among all least-squares solutions
// it returns the one with the smallest coefficient norm, so collinear or
// short tables still give a unique answer.
func FitOLS(x [][]float64, y []float64) (*LinearModel, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrNoHistory
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d rows but %d targets", ErrFeatureCount, n, len(y))
	}
	p := len(x[0])
	if p == 0 {
		return nil, fmt.Errorf("%w: no predictors", ErrFeatureCount)
	}

	xmean := make([]float64, p)
	var ymean float64
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrFeatureCount, i, len(row), p)
		}
		for j, v := range row {
			xmean[j] += v
		}
		ymean += y[i]
	}
	for j := range xmean {
		xmean[j] /= float64(n)
	}
	ymean /= float64(n)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			xc.Set(i, j, v-xmean[j])
		}
		yc.SetVec(i, y[i]-ymean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return nil, errors.New("singular value decomposition failed")
	}

	model := &LinearModel{
		Coefficients: make([]float64, p),
		Rank:         svd.Rank(rcond),
		Samples:      n,
	}
	if model.Rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, yc, model.Rank)
		for j := range model.Coefficients {
			model.Coefficients[j] = beta.AtVec(j)
		}
	}

	model.Intercept = ymean
	for j, c := range model.Coefficients {
		model.Intercept -= c * xmean[j]
	}
	return model, nil
}

// Predict evaluates the model at features.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.Coefficients))
	}
	out := m.Intercept
	for j, c := range m.Coefficients {
		out += c * features[j]
	}
	return out, nil
}

// Underdetermined reports whether the data could not pin down a unique
// least-squares solution on its own.
func (m *LinearModel) Underdetermined() bool {
	p := len(m.Coefficients)
	return m.Samples < p+1 || m.Rank < p
}

// IncomePrediction is the result of predicting income from the history table.
type IncomePrediction struct {
	Income          float64
	Outlook         string
	Underdetermined bool
	Samples         int
}

// FitIncome fits income ~ savings + debt + expenses over rows.
func FitIncome(rows []models.HistoryRow) (*LinearModel, error) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = []float64{r.Savings, r.Debt, r.Expenses}
		y[i] = r.Income
	}
	return FitOLS(x, y)
}

// PredictIncome refits on rows and predicts income for one month.
// Nothing is cached; every call sees the current table.
func PredictIncome(rows []models.HistoryRow, savings, debt, expenses float64) (*IncomePrediction, error) {
	if savings < 0 || debt < 0 || expenses < 0 {
		return nil, ErrNegativeInput
	}
	model, err := FitIncome(rows)
	if err != nil {
		return nil, err
	}
	income, err := model.Predict([]float64{savings, debt, expenses})
	if err != nil {
		return nil, err
	}
	return &IncomePrediction{
		Income:          income,
		Outlook:         Outlook(income),
		Underdetermined: model.Underdetermined(),
		Samples:         model.Samples,
	}, nil
}

// Outlook describes a predicted monthly income.
func Outlook(income float64) string {
	switch {
	case income < 5000:
		return "Your predicted income is low. Consider reducing expenses or increasing revenue through marketing or new product offerings."
	case income < 15000:
		return "Your income is on track! Focus on optimizing cash flow and reducing unnecessary expenses."
	default:
		return "Your business is doing great! Consider expanding and diversifying revenue streams for further growth."
	}
}
