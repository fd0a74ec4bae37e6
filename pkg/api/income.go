package api

// HistoryRow is one month of the history table.
type HistoryRow struct {
	Month    string  `json:"month"`
	Savings  float64 `json:"savings"`
	Debt     float64 `json:"debt"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

// History is the full table and the revision it was read at. Pass the
// revision back on mutations to detect concurrent changes.
type History struct {
	Rows     []HistoryRow `json:"rows"`
	Revision string       `json:"revision"`
}

// GetHistoryRequest is empty.
type GetHistoryRequest struct{}

// GetHistoryResponse carries the current table.
type GetHistoryResponse struct {
	History *History `json:"history"`
}

// PredictIncomeRequest asks for a monthly income prediction.
type PredictIncomeRequest struct {
	Savings  float64 `json:"savings"`
	Debt     float64 `json:"debt"`
	Expenses float64 `json:"expenses"`
}

// PredictIncomeResponse is the prediction from a fit on the whole table.
type PredictIncomeResponse struct {
	Income          float64 `json:"income"`
	Outlook         string  `json:"outlook"`
	Underdetermined bool    `json:"underdetermined"`
	Samples         int     `json:"samples"`
}

// AddHistoryRowRequest adds a month. Month is an English month name. When
// Income is omitted it is predicted from the current table first.
type AddHistoryRowRequest struct {
	Month            string   `json:"month"`
	Year             int      `json:"year"`
	Savings          float64  `json:"savings"`
	Debt             float64  `json:"debt"`
	Expenses         float64  `json:"expenses"`
	Income           *float64 `json:"income,omitempty"`
	ExpectedRevision string   `json:"expected_revision,omitempty"`
}

// AddHistoryRowResponse returns the stored row and the updated table.
type AddHistoryRowResponse struct {
	Row             HistoryRow `json:"row"`
	IncomePredicted bool       `json:"income_predicted"`
	History         *History   `json:"history"`
}

// RemoveHistoryRowRequest removes every row labeled Month ("May 2024").
type RemoveHistoryRowRequest struct {
	Month            string `json:"month"`
	ExpectedRevision string `json:"expected_revision,omitempty"`
}

// RemoveHistoryRowResponse reports how many rows were removed.
type RemoveHistoryRowResponse struct {
	Removed int      `json:"removed"`
	History *History `json:"history"`
}
