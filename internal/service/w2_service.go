package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/pennyworth/internal/metrics"
	"github.com/mmynk/pennyworth/internal/middleware"
	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/predict"
	"github.com/mmynk/pennyworth/internal/w2"
	"github.com/mmynk/pennyworth/pkg/api"
)

// W2Service implements the Connect W2Service
type W2Service struct {
	processor *w2.Processor
	model     *predict.TaxModel
	metrics   *metrics.Metrics
}

// NewW2Service creates a new W2Service. The model is trained once by the
// caller and shared by every request.
func NewW2Service(processor *w2.Processor, model *predict.TaxModel, m *metrics.Metrics) *W2Service {
	return &W2Service{processor: processor, model: model, metrics: m}
}

// Extract reads the four W-2 figures from an uploaded PDF.
func (s *W2Service) Extract(ctx context.Context, req *connect.Request[api.ExtractW2Request]) (*connect.Response[api.ExtractW2Response], error) {
	username := middleware.GetUsername(ctx)
	slog.Info("W-2 upload received", "username", username, "filename", req.Msg.Filename, "bytes", len(req.Msg.Document))

	flow := w2.NewFlow()
	if err := flow.Upload(req.Msg.Document); err != nil {
		slog.Warn("W-2 upload rejected", "username", username, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	ex, err := flow.Extract(ctx, s.processor)
	if err != nil {
		s.metrics.W2Extraction(string(w2.StatusFailure))
		slog.Error("W-2 extraction failed", "username", username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.W2Extraction(string(ex.Status))

	if ex.Status == w2.StatusPartial {
		slog.Warn("W-2 extraction partial", "username", username, "missing", ex.MissingFields)
	}

	return connect.NewResponse(&api.ExtractW2Response{
		Record:        w2ToAPI(ex.Record),
		Status:        string(ex.Status),
		MissingFields: ex.MissingFields,
		Warning:       ex.Warning,
	}), nil
}

// PredictLiability predicts the adjusted tax liability for the given
// figures, which may be user corrections of an extraction.
func (s *W2Service) PredictLiability(ctx context.Context, req *connect.Request[api.PredictLiabilityRequest]) (*connect.Response[api.PredictLiabilityResponse], error) {
	status, err := predict.ParseFilingStatus(req.Msg.FilingStatus)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	rec := w2FromAPI(req.Msg.Record)
	flow := w2.Resume(rec)
	if err := flow.Adjust(rec); err != nil {
		return nil, w2Error(err)
	}
	l, err := flow.Predict(s.model, status, req.Msg.Dependents)
	if err != nil {
		slog.Warn("PredictLiability failed", "error", err)
		return nil, w2Error(err)
	}

	slog.Debug("Predicted liability",
		"base", l.Base,
		"filing_status", status,
		"dependents", req.Msg.Dependents,
		"adjusted", l.Adjusted,
	)

	return connect.NewResponse(&api.PredictLiabilityResponse{
		BaseLiability:        cents(l.Base),
		FilingMultiplier:     l.FilingMultiplier,
		DependentsMultiplier: l.DependentsMultiplier,
		AdjustedLiability:    cents(l.Adjusted),
	}), nil
}

func w2Error(err error) error {
	switch {
	case errors.Is(err, w2.ErrInvalidTransition):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, w2.ErrNegativeAmount),
		errors.Is(err, predict.ErrNegativeInput),
		errors.Is(err, predict.ErrNegativeDependents),
		errors.Is(err, predict.ErrUnknownFilingStatus):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func w2ToAPI(r models.W2Record) api.W2Record {
	return api.W2Record{
		Wages:               r.Wages,
		FederalTaxWithheld:  r.FederalTaxWithheld,
		SocialSecurityWages: r.SocialSecurityWages,
		MedicareWages:       r.MedicareWages,
	}
}

func w2FromAPI(r api.W2Record) models.W2Record {
	return models.W2Record{
		Wages:               r.Wages,
		FederalTaxWithheld:  r.FederalTaxWithheld,
		SocialSecurityWages: r.SocialSecurityWages,
		MedicareWages:       r.MedicareWages,
	}
}
