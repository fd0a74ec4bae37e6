package predict

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/pennyworth/internal/models"
)

var (
	// ErrUnknownFilingStatus is returned for an unrecognized filing status.
	ErrUnknownFilingStatus = errors.New("unknown filing status")
	// ErrNegativeDependents is returned when dependents < 0.
	ErrNegativeDependents = errors.New("dependents must be non-negative")
)

// FilingStatus is a federal filing status.
type FilingStatus string

const (
	Single               FilingStatus = "single"
	MarriedFilingJointly FilingStatus = "married_filing_jointly"
	HeadOfHousehold      FilingStatus = "head_of_household"
)

// ParseFilingStatus accepts the canonical form or the display form
// ("Married Filing Jointly"). Empty means Single.
func ParseFilingStatus(s string) (FilingStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch FilingStatus(norm) {
	case "", Single:
		return Single, nil
	case MarriedFilingJointly:
		return MarriedFilingJointly, nil
	case HeadOfHousehold:
		return HeadOfHousehold, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
}

// Multiplier is the liability adjustment for the filing status.
func (f FilingStatus) Multiplier() float64 {
	switch f {
	case MarriedFilingJointly:
		return 0.9
	case HeadOfHousehold:
		return 1.1
	default:
		return 1.0
	}
}

// DependentsMultiplier lowers liability 2% per dependent, at most 20%.
func DependentsMultiplier(dependents int) (float64, error) {
	if dependents < 0 {
		return 0, ErrNegativeDependents
	}
	return math.Max(1-0.02*float64(dependents), 0.8), nil
}

// trainingW2 is the synthetic table the liability model learns from.
var trainingW2 = []struct {
	record    models.W2Record
	liability float64
}{
	{models.W2Record{Wages: 50000, FederalTaxWithheld: 5000, SocialSecurityWages: 50000, MedicareWages: 50000}, 8000},
	{models.W2Record{Wages: 60000, FederalTaxWithheld: 6000, SocialSecurityWages: 60000, MedicareWages: 60000}, 9000},
	{models.W2Record{Wages: 75000, FederalTaxWithheld: 7500, SocialSecurityWages: 75000, MedicareWages: 75000}, 11000},
	{models.W2Record{Wages: 85000, FederalTaxWithheld: 8500, SocialSecurityWages: 85000, MedicareWages: 85000}, 12000},
}

// w2Features is the model input: the four W-2 fields and total income.
func w2Features(r models.W2Record) []float64 {
	return []float64{r.Wages, r.FederalTaxWithheld, r.SocialSecurityWages, r.MedicareWages, r.TotalIncome()}
}

// TaxModel predicts a base tax liability from W-2 figures.
type TaxModel struct {
	forest *Forest

	TrainRows  int
	TestRows   int
	HoldoutMAE float64
}

// TrainTaxModel fits the liability forest on 75% of the synthetic table
// and measures mean absolute error on the rest.
func TrainTaxModel(cfg ForestConfig) (*TaxModel, error) {
	train, test := holdOut(len(trainingW2), 0.25, cfg.Seed)

	x := make([][]float64, 0, len(train))
	y := make([]float64, 0, len(train))
	for _, i := range train {
		x = append(x, w2Features(trainingW2[i].record))
		y = append(y, trainingW2[i].liability)
	}
	forest, err := FitForest(x, y, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to train liability model: %w", err)
	}

	m := &TaxModel{forest: forest, TrainRows: len(train), TestRows: len(test)}
	if len(test) > 0 {
		var total float64
		for _, i := range test {
			pred, err := forest.Predict(w2Features(trainingW2[i].record))
			if err != nil {
				return nil, err
			}
			total += math.Abs(pred - trainingW2[i].liability)
		}
		m.HoldoutMAE = total / float64(len(test))
	}
	return m, nil
}

// Liability is a predicted tax liability with its adjustments.
type Liability struct {
	Base                 float64
	FilingMultiplier     float64
	DependentsMultiplier float64
	Adjusted             float64
}

// Predict computes base × filing × dependents for the record.
func (m *TaxModel) Predict(rec models.W2Record, status FilingStatus, dependents int) (*Liability, error) {
	if rec.Wages < 0 || rec.FederalTaxWithheld < 0 || rec.SocialSecurityWages < 0 || rec.MedicareWages < 0 {
		return nil, ErrNegativeInput
	}
	dep, err := DependentsMultiplier(dependents)
	if err != nil {
		return nil, err
	}
	base, err := m.forest.Predict(w2Features(rec))
	if err != nil {
		return nil, err
	}
	filing := status.Multiplier()
	return &Liability{
		Base:                 base,
		FilingMultiplier:     filing,
		DependentsMultiplier: dep,
		Adjusted:             base * filing * dep,
	}, nil
}
