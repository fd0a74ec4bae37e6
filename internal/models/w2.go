package models

// W2Record holds the figures read from a W-2 wage and tax statement.
// Fields that could not be read are 0.
type W2Record struct {
	Wages               float64
	FederalTaxWithheld  float64
	SocialSecurityWages float64
	MedicareWages       float64
}

// TotalIncome is wages plus social security and medicare wages.
func (r W2Record) TotalIncome() float64 {
	return r.Wages + r.SocialSecurityWages + r.MedicareWages
}
