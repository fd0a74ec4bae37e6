package w2

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/predict"
)

// ErrInvalidTransition is returned when a step is taken out of order.
var ErrInvalidTransition = errors.New("invalid W-2 step")

// ErrNegativeAmount is returned when a corrected figure is negative.
var ErrNegativeAmount = errors.New("W-2 amounts must be non-negative")

// State is where a W-2 is in its lifecycle.
type State int

const (
	NoFile State = iota
	Uploaded
	Extracted
	Adjusted
	Predicted
)

func (s State) String() string {
	switch s {
	case NoFile:
		return "no_file"
	case Uploaded:
		return "uploaded"
	case Extracted:
		return "extracted"
	case Adjusted:
		return "adjusted"
	case Predicted:
		return "predicted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Flow walks one W-2 through upload, extraction, correction and
// prediction. A Flow is used by a single request and is not safe for
// concurrent use.
type Flow struct {
	state      State
	upload     []byte
	extraction *Extraction
	record     models.W2Record
	liability  *predict.Liability
}

// NewFlow starts with no file.
func NewFlow() *Flow {
	return &Flow{state: NoFile}
}

// Resume starts from figures that were extracted earlier, as if
// extraction had just succeeded.
func Resume(rec models.W2Record) *Flow {
	return &Flow{
		state:      Extracted,
		extraction: &Extraction{Record: rec, Status: StatusSuccess},
		record:     rec,
	}
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Record returns the current figures, including corrections.
func (f *Flow) Record() models.W2Record { return f.record }

// Extraction returns the extraction result, or nil before extraction.
func (f *Flow) Extraction() *Extraction { return f.extraction }

// Liability returns the prediction, or nil before prediction.
func (f *Flow) Liability() *predict.Liability { return f.liability }

// Upload accepts a PDF.
func (f *Flow) Upload(data []byte) error {
	if f.state != NoFile {
		return f.invalid("upload")
	}
	if err := CheckPDF(data); err != nil {
		return err
	}
	f.upload = data
	f.state = Uploaded
	return nil
}

// Extract runs the processor on the uploaded file. On failure the flow
// records a failed extraction and nothing can follow it.
func (f *Flow) Extract(ctx context.Context, p *Processor) (*Extraction, error) {
	if f.state != Uploaded {
		return nil, f.invalid("extract")
	}
	ex, err := p.Process(ctx, f.upload)
	f.upload = nil
	f.state = Extracted
	if err != nil {
		f.extraction = &Extraction{Status: StatusFailure}
		return nil, err
	}
	f.extraction = ex
	f.record = ex.Record
	return ex, nil
}

// Adjust replaces the figures with user corrections.
func (f *Flow) Adjust(rec models.W2Record) error {
	if !f.hasData() && f.state != Adjusted {
		return f.invalid("adjust")
	}
	if rec.Wages < 0 || rec.FederalTaxWithheld < 0 || rec.SocialSecurityWages < 0 || rec.MedicareWages < 0 {
		return ErrNegativeAmount
	}
	f.record = rec
	f.state = Adjusted
	return nil
}

// Predict computes the liability for the current figures.
func (f *Flow) Predict(model *predict.TaxModel, status predict.FilingStatus, dependents int) (*predict.Liability, error) {
	if !f.hasData() && f.state != Adjusted {
		return nil, f.invalid("predict")
	}
	l, err := model.Predict(f.record, status, dependents)
	if err != nil {
		return nil, err
	}
	f.liability = l
	f.state = Predicted
	return l, nil
}

// hasData reports whether extraction produced figures to work with.
func (f *Flow) hasData() bool {
	return f.state == Extracted && f.extraction != nil && f.extraction.Status != StatusFailure
}

func (f *Flow) invalid(step string) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, step, f.state)
}
