package api

// W2Record is the set of figures read from a W-2.
type W2Record struct {
	Wages               float64 `json:"wages"`
	FederalTaxWithheld  float64 `json:"federal_tax_withheld"`
	SocialSecurityWages float64 `json:"social_security_wages"`
	MedicareWages       float64 `json:"medicare_wages"`
}

// ExtractW2Request carries the uploaded PDF. Document is base64 in JSON.
type ExtractW2Request struct {
	Filename string `json:"filename,omitempty"`
	Document []byte `json:"document"`
}

// ExtractW2Response is a success or partial extraction. Status is
// "success" or "partial"; failures are returned as errors.
type ExtractW2Response struct {
	Record        W2Record `json:"record"`
	Status        string   `json:"status"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Warning       string   `json:"warning,omitempty"`
}

// PredictLiabilityRequest predicts liability for (possibly corrected)
// figures. FilingStatus is single, married_filing_jointly or
// head_of_household.
type PredictLiabilityRequest struct {
	Record       W2Record `json:"record"`
	FilingStatus string   `json:"filing_status"`
	Dependents   int      `json:"dependents"`
}

// PredictLiabilityResponse is base × filing × dependents, rounded to cents.
type PredictLiabilityResponse struct {
	BaseLiability        float64 `json:"base_liability"`
	FilingMultiplier     float64 `json:"filing_multiplier"`
	DependentsMultiplier float64 `json:"dependents_multiplier"`
	AdjustedLiability    float64 `json:"adjusted_liability"`
}
