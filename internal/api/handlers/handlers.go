package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cashlens/internal/api/middleware"
	"cashlens/internal/chat"
	"cashlens/internal/finance"
	"cashlens/internal/llm"
)

// maxStatementBytes caps uploaded statement size.
const maxStatementBytes = 10 << 20

// StatementsHandler handles statement upload and normalization.
type StatementsHandler struct {
	log zerolog.Logger
}

// NewStatementsHandler creates a new statements handler.
func NewStatementsHandler(log zerolog.Logger) *StatementsHandler {
	return &StatementsHandler{log: log}
}

// Parse handles POST /api/statements/parse. The body is the raw CSV export,
// either directly or as a multipart "file" field. Structural parse failures
// come back as 400 with the remediation message; a parsed statement without
// a balance column reports needsBalanceInput so the client can collect one.
func (h *StatementsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	csvText, err := readStatementBody(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	parsed, err := finance.ParseCSV(csvText)
	if err != nil {
		var parseErr *finance.ParseError
		if errors.As(err, &parseErr) {
			h.log.Warn().Str("code", string(parseErr.Code)).Str("column", parseErr.Column).Msg("Statement rejected")
			middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error": parseErr.Message,
				"code":  string(parseErr.Code),
			})
			return
		}
		h.log.Error().Err(err).Msg("Failed to parse statement")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to parse statement")
		return
	}

	h.log.Info().
		Int("transactions", len(parsed.Transactions)).
		Bool("has_balance_column", parsed.HasBalanceColumn).
		Msg("Statement parsed")

	middleware.WriteJSON(w, http.StatusOK, parsed)
}

func readStatementBody(r *http.Request) (string, error) {
	reader := io.Reader(r.Body)

	if err := r.ParseMultipartForm(maxStatementBytes); err == nil {
		file, _, ferr := r.FormFile("file")
		if ferr != nil {
			return "", ferr
		}
		defer file.Close()
		reader = file
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxStatementBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SnapshotHandler builds financial snapshots from normalized transactions.
type SnapshotHandler struct {
	log zerolog.Logger
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(log zerolog.Logger) *SnapshotHandler {
	return &SnapshotHandler{log: log}
}

// Build handles POST /api/snapshot. The starting balance is authoritative:
// it is the statement's own latest balance or a manually entered value.
func (h *SnapshotHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions    []finance.Transaction `json:"transactions"`
		StartingBalance json.RawMessage       `json:"startingBalance"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var startingBalance decimal.Decimal
	if err := json.Unmarshal(req.StartingBalance, &startingBalance); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Starting balance must be a number. Please re-enter it.")
		return
	}

	snapshot := finance.BuildSnapshot(req.Transactions, startingBalance, civil.DateOf(time.Now()))

	h.log.Info().
		Int("transactions", snapshot.TransactionCount).
		Bool("risk_flag", snapshot.RiskFlag).
		Msg("Snapshot built")

	middleware.WriteJSON(w, http.StatusOK, snapshot)
}

// BriefingHandler produces the morning briefing for a snapshot.
type BriefingHandler struct {
	completer llm.Completer
	log       zerolog.Logger
}

// NewBriefingHandler creates a new briefing handler.
func NewBriefingHandler(completer llm.Completer, log zerolog.Logger) *BriefingHandler {
	return &BriefingHandler{completer: completer, log: log}
}

// Briefing handles POST /api/briefing.
func (h *BriefingHandler) Briefing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Snapshot finance.FinancialSnapshot `json:"snapshot"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	briefing, err := chat.Briefing(r.Context(), h.completer, req.Snapshot)
	if err != nil {
		h.log.Error().Err(err).Msg("Briefing generation failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate briefing. Check that your API key is valid.")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"briefing": briefing})
}

// ChatHandler answers questions about a snapshot: classify, dispatch to the
// engine, explain.
type ChatHandler struct {
	completer llm.Completer
	log       zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(completer llm.Completer, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{completer: completer, log: log}
}

// Chat handles POST /api/chat. Snapshot dates arrive as ISO-8601 text and
// re-inflate to calendar dates during decoding; date arithmetic downstream
// requires real dates.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string                    `json:"question"`
		Snapshot finance.FinancialSnapshot `json:"snapshot"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if len(req.Snapshot.Projection) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Snapshot is missing its projection; rebuild it before asking questions")
		return
	}

	ctx := r.Context()

	intentResult, err := chat.ExtractIntent(ctx, h.completer, req.Question)
	if err != nil {
		h.log.Error().Err(err).Msg("Intent classification failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process your question. Check that your API key is valid.")
		return
	}

	engineResult, assumptionMade := chat.Dispatch(intentResult, req.Snapshot, civil.DateOf(time.Now()))

	explanation, err := chat.Explain(ctx, h.completer, req.Question, intentResult.Intent, engineResult, assumptionMade)
	if err != nil {
		h.log.Error().Err(err).Msg("Explanation failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process your question. Check that your API key is valid.")
		return
	}

	h.log.Info().
		Str("intent", string(intentResult.Intent)).
		Bool("assumption_made", assumptionMade).
		Msg("Question answered")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"explanation":  explanation,
		"engineResult": engineResult,
		"intent":       intentResult.Intent,
	})
}
