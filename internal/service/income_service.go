package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pennyworth/internal/metrics"
	"github.com/mmynk/pennyworth/internal/models"
	"github.com/mmynk/pennyworth/internal/predict"
	"github.com/mmynk/pennyworth/internal/storage"
	"github.com/mmynk/pennyworth/pkg/api"
)

// Accepted year range for new rows, relative to the current year.
const (
	yearsBack    = 10
	yearsForward = 1
)

// IncomeService implements the Connect IncomeService
type IncomeService struct {
	store   storage.HistoryStore
	metrics *metrics.Metrics
}

// NewIncomeService creates a new IncomeService with the given history backend.
func NewIncomeService(store storage.HistoryStore, m *metrics.Metrics) *IncomeService {
	return &IncomeService{store: store, metrics: m}
}

// GetHistory returns the full history table.
func (s *IncomeService) GetHistory(ctx context.Context, req *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error) {
	table, err := s.store.LoadHistory(ctx)
	if err != nil {
		slog.Error("Failed to load history", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.GetHistoryResponse{History: historyToAPI(table)}), nil
}

// Predict fits the regression on the current table and predicts income.
func (s *IncomeService) Predict(ctx context.Context, req *connect.Request[api.PredictIncomeRequest]) (*connect.Response[api.PredictIncomeResponse], error) {
	table, err := s.store.LoadHistory(ctx)
	if err != nil {
		slog.Error("Failed to load history", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	p, err := predict.PredictIncome(table.Rows, req.Msg.Savings, req.Msg.Debt, req.Msg.Expenses)
	if err != nil {
		slog.Warn("PredictIncome failed", "error", err)
		return nil, predictionError(err)
	}

	slog.Debug("Predicted income",
		"income", p.Income,
		"samples", p.Samples,
		"underdetermined", p.Underdetermined,
	)

	return connect.NewResponse(&api.PredictIncomeResponse{
		Income:          p.Income,
		Outlook:         p.Outlook,
		Underdetermined: p.Underdetermined,
		Samples:         p.Samples,
	}), nil
}

// AddRow appends a month to the history table. Omitted income is predicted
// from the table as it is before the insert.
func (s *IncomeService) AddRow(ctx context.Context, req *connect.Request[api.AddHistoryRowRequest]) (*connect.Response[api.AddHistoryRowResponse], error) {
	month, err := parseMonth(req.Msg.Month)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := validateYear(req.Msg.Year, time.Now().Year()); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.Savings < 0 || req.Msg.Debt < 0 || req.Msg.Expenses < 0 ||
		(req.Msg.Income != nil && *req.Msg.Income < 0) {
		return nil, connect.NewError(connect.CodeInvalidArgument, predict.ErrNegativeInput)
	}

	row := models.HistoryRow{
		Month:    models.MonthLabel(month, req.Msg.Year),
		Savings:  req.Msg.Savings,
		Debt:     req.Msg.Debt,
		Expenses: req.Msg.Expenses,
	}

	predicted := req.Msg.Income == nil
	if predicted {
		table, err := s.store.LoadHistory(ctx)
		if err != nil {
			slog.Error("Failed to load history", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		p, err := predict.PredictIncome(table.Rows, row.Savings, row.Debt, row.Expenses)
		if err != nil {
			slog.Warn("PredictIncome failed", "error", err)
			return nil, predictionError(err)
		}
		row.Income = p.Income
	} else {
		row.Income = *req.Msg.Income
	}

	table, err := s.store.AddHistoryRow(ctx, row, req.Msg.ExpectedRevision)
	s.metrics.HistoryMutation("add", err)
	if err != nil {
		slog.Warn("AddHistoryRow failed", "month", row.Month, "error", err)
		return nil, historyError(err)
	}

	slog.Info("History row added", "month", row.Month, "income_predicted", predicted, "revision", table.Revision)
	return connect.NewResponse(&api.AddHistoryRowResponse{
		Row:             rowToAPI(row),
		IncomePredicted: predicted,
		History:         historyToAPI(table),
	}), nil
}

// RemoveRow deletes every row with the given label.
func (s *IncomeService) RemoveRow(ctx context.Context, req *connect.Request[api.RemoveHistoryRowRequest]) (*connect.Response[api.RemoveHistoryRowResponse], error) {
	month := strings.TrimSpace(req.Msg.Month)
	if month == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("month is required"))
	}

	table, removed, err := s.store.RemoveHistoryRows(ctx, month, req.Msg.ExpectedRevision)
	s.metrics.HistoryMutation("remove", err)
	if err != nil {
		slog.Warn("RemoveHistoryRows failed", "month", month, "error", err)
		return nil, historyError(err)
	}

	slog.Info("History rows removed", "month", month, "removed", removed, "revision", table.Revision)
	return connect.NewResponse(&api.RemoveHistoryRowResponse{
		Removed: removed,
		History: historyToAPI(table),
	}), nil
}

// parseMonth accepts an English month name in any case.
func parseMonth(name string) (time.Month, error) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q is not a month name", name)
}

func validateYear(year, current int) error {
	if year < current-yearsBack || year > current+yearsForward {
		return fmt.Errorf("year %d is outside [%d, %d]", year, current-yearsBack, current+yearsForward)
	}
	return nil
}

func predictionError(err error) error {
	switch {
	case errors.Is(err, predict.ErrNegativeInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, predict.ErrNoHistory):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func historyError(err error) error {
	if errors.Is(err, storage.ErrConflict) {
		return connect.NewError(connect.CodeAborted, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func rowToAPI(r models.HistoryRow) api.HistoryRow {
	return api.HistoryRow{
		Month:    r.Month,
		Savings:  r.Savings,
		Debt:     r.Debt,
		Expenses: r.Expenses,
		Income:   r.Income,
	}
}

func historyToAPI(t *models.HistoryTable) *api.History {
	h := &api.History{
		Rows:     make([]api.HistoryRow, 0, len(t.Rows)),
		Revision: t.Revision,
	}
	for _, r := range t.Rows {
		h.Rows = append(h.Rows, rowToAPI(r))
	}
	return h
}
