// Package w2 reads wage figures from an uploaded W-2 PDF and tracks the
// upload through extraction, correction and prediction.
package w2

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mmynk/pennyworth/internal/models"
)

// Status is the outcome of an extraction.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailure Status = "failure"
)

// Field names as reported in MissingFields.
const (
	FieldWages               = "wages"
	FieldFederalTaxWithheld  = "federal_tax_withheld"
	FieldSocialSecurityWages = "social_security_wages"
	FieldMedicareWages       = "medicare_wages"
)

// PartialWarning is shown when any field came out as zero.
const PartialWarning = "Some fields could not be extracted. Verify the uploaded document."

const amount = `\$(\d{1,3}(,\d{3})*(\.\d{2})?)`

var patterns = []struct {
	field string
	re    *regexp.Regexp
	set   func(*models.W2Record, float64)
}{
	{FieldWages, regexp.MustCompile(`Wages.*` + amount), func(r *models.W2Record, v float64) { r.Wages = v }},
	{FieldFederalTaxWithheld, regexp.MustCompile(`Federal.*` + amount), func(r *models.W2Record, v float64) { r.FederalTaxWithheld = v }},
	{FieldSocialSecurityWages, regexp.MustCompile(`Social Security Wages.*` + amount), func(r *models.W2Record, v float64) { r.SocialSecurityWages = v }},
	{FieldMedicareWages, regexp.MustCompile(`Medicare Wages.*` + amount), func(r *models.W2Record, v float64) { r.MedicareWages = v }},
}

// Extraction is the result of reading one W-2.
type Extraction struct {
	Record models.W2Record
	Status Status

	// MissingFields lists fields whose label was not found at all. A field
	// can also be present with a genuine zero; both make the result partial.
	MissingFields []string
	Warning       string
}

// Parse pulls the four labeled dollar amounts out of OCR text. Each label
// matches up to the last dollar amount on its line.
func Parse(text string) *Extraction {
	ex := &Extraction{Status: StatusSuccess}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			ex.MissingFields = append(ex.MissingFields, p.field)
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			ex.MissingFields = append(ex.MissingFields, p.field)
			continue
		}
		p.set(&ex.Record, v)
	}

	r := ex.Record
	if r.Wages == 0 || r.FederalTaxWithheld == 0 || r.SocialSecurityWages == 0 || r.MedicareWages == 0 {
		ex.Status = StatusPartial
		ex.Warning = PartialWarning
	}
	return ex
}
