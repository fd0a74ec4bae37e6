package predict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pennyworth/internal/models"
)

func TestPredictIncome(t *testing.T) {
	tests := []struct {
		name                string
		rows                []models.HistoryRow
		savings             float64
		debt                float64
		expenses            float64
		wantIncome          float64
		wantUnderdetermined bool
		wantErr             error
	}{
		{
			name:                "seed table collinear columns",
			rows:                models.SeedHistory(),
			savings:             5000,
			debt:                1000,
			expenses:            1500,
			wantIncome:          9870000.0 / 797.0,
			wantUnderdetermined: true,
		},
		{
			name:                "two rows",
			rows:                models.SeedHistory()[:2],
			savings:             5000,
			debt:                1000,
			expenses:            1500,
			wantIncome:          130000.0 / 9.0,
			wantUnderdetermined: true,
		},
		{
			name:                "single row predicts its income",
			rows:                models.SeedHistory()[:1],
			savings:             99999,
			debt:                1,
			expenses:            1,
			wantIncome:          5000,
			wantUnderdetermined: true,
		},
		{
			name: "well determined exact fit",
			rows: []models.HistoryRow{
				{Savings: 1, Debt: 0, Expenses: 0, Income: 102},
				{Savings: 0, Debt: 1, Expenses: 0, Income: 103},
				{Savings: 0, Debt: 0, Expenses: 1, Income: 104},
				{Savings: 0, Debt: 0, Expenses: 0, Income: 100},
				{Savings: 1, Debt: 1, Expenses: 1, Income: 109},
			},
			savings:    2,
			debt:       2,
			expenses:   2,
			wantIncome: 118,
		},
		{
			name:    "empty table",
			rows:    nil,
			wantErr: ErrNoHistory,
		},
		{
			name:    "negative input",
			rows:    models.SeedHistory(),
			savings: -1,
			wantErr: ErrNegativeInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PredictIncome(tt.rows, tt.savings, tt.debt, tt.expenses)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantIncome, got.Income, 1e-6)
			assert.Equal(t, tt.wantUnderdetermined, got.Underdetermined)
			assert.Equal(t, len(tt.rows), got.Samples)
			assert.Equal(t, Outlook(got.Income), got.Outlook)
		})
	}
}

func TestPredictIncome_Deterministic(t *testing.T) {
	first, err := PredictIncome(models.SeedHistory(), 5000, 1000, 1500)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := PredictIncome(models.SeedHistory(), 5000, 1000, 1500)
		require.NoError(t, err)
		assert.Equal(t, first.Income, again.Income)
	}
}

func TestFitOLS_MinimumNorm(t *testing.T) {
	model, err := FitIncome(models.SeedHistory())
	require.NoError(t, err)

	assert.Equal(t, 2, model.Rank)
	assert.InDelta(t, 730.0/797.0, model.Coefficients[0], 1e-9)
	assert.InDelta(t, 215.0/797.0, model.Coefficients[1], 1e-9)
	assert.InDelta(t, 215.0/797.0, model.Coefficients[2], 1e-9)
	assert.InDelta(t, 5682500.0/797.0, model.Intercept, 1e-6)
}

func TestFitOLS_FeatureMismatch(t *testing.T) {
	_, err := FitOLS([][]float64{{1, 2}, {3}}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrFeatureCount))

	model, err := FitOLS([][]float64{{1}, {2}}, []float64{1, 2})
	require.NoError(t, err)
	_, err = model.Predict([]float64{1, 2})
	assert.True(t, errors.Is(err, ErrFeatureCount))
}

func TestOutlook(t *testing.T) {
	assert.Contains(t, Outlook(4999.99), "low")
	assert.Contains(t, Outlook(5000), "on track")
	assert.Contains(t, Outlook(14999), "on track")
	assert.Contains(t, Outlook(15000), "great")
}
