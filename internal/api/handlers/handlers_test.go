package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cashlens/internal/finance"
	"cashlens/internal/logger"
)

// scriptedCompleter returns canned responses in call order.
type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", context.DeadlineExceeded
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func TestStatementsParse(t *testing.T) {
	h := NewStatementsHandler(logger.NewWithWriter(&bytes.Buffer{}))

	csvText := "date,description,amount,balance\n2026-08-01,Paycheck,2500,3100\n2026-08-03,Groceries,-82.45,3017.55\n"
	req := httptest.NewRequest(http.MethodPost, "/api/statements/parse", strings.NewReader(csvText))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	h.Parse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var parsed finance.ParsedCSV
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(parsed.Transactions) != 2 {
		t.Errorf("got %d transactions, want 2", len(parsed.Transactions))
	}
	if !parsed.HasBalanceColumn {
		t.Error("HasBalanceColumn = false, want true")
	}
}

func TestStatementsParse_MissingColumn(t *testing.T) {
	h := NewStatementsHandler(logger.NewWithWriter(&bytes.Buffer{}))

	req := httptest.NewRequest(http.MethodPost, "/api/statements/parse", strings.NewReader("description,amount\nCoffee,-4.50\n"))
	rec := httptest.NewRecorder()

	h.Parse(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["code"] != string(finance.ErrMissingColumn) {
		t.Errorf("code = %q, want %q", body["code"], finance.ErrMissingColumn)
	}
	if !strings.Contains(body["error"], `"date"`) {
		t.Errorf("error message %q does not name the missing column", body["error"])
	}
}

func TestSnapshotBuild(t *testing.T) {
	h := NewSnapshotHandler(logger.NewWithWriter(&bytes.Buffer{}))

	body := `{
		"transactions": [
			{"date": "2026-08-01", "description": "Paycheck", "amount": "2500"},
			{"date": "2026-08-20", "description": "Rent", "amount": "-1200"}
		],
		"startingBalance": "1300"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Build(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var snap finance.FinancialSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(snap.Projection) != finance.ProjectionDays {
		t.Errorf("projection has %d entries, want %d", len(snap.Projection), finance.ProjectionDays)
	}
	if snap.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", snap.TransactionCount)
	}
}

func TestSnapshotBuild_NonNumericBalance(t *testing.T) {
	h := NewSnapshotHandler(logger.NewWithWriter(&bytes.Buffer{}))

	body := `{"transactions": [], "startingBalance": "about five hundred"}`
	req := httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Build(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "re-enter") {
		t.Errorf("body %q does not ask the user to re-enter the balance", rec.Body)
	}
}

func TestChat(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"intent":"balance_query","params":{}}`,
		"Your current balance is $1300.00.",
	}}
	h := NewChatHandler(completer, logger.NewWithWriter(&bytes.Buffer{}))

	snapshotJSON := buildSnapshotJSON(t)
	body := `{"question": "What's my balance?", "snapshot": ` + snapshotJSON + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Explanation string          `json:"explanation"`
		Intent      string          `json:"intent"`
		Result      json.RawMessage `json:"engineResult"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Intent != "balance_query" {
		t.Errorf("intent = %q, want balance_query", resp.Intent)
	}
	if resp.Explanation != "Your current balance is $1300.00." {
		t.Errorf("explanation = %q", resp.Explanation)
	}
	if completer.calls != 2 {
		t.Errorf("completer called %d times, want 2 (classify + explain)", completer.calls)
	}
}

func TestChat_UnknownIntentNoExplainerCall(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		`{"intent":"unknown","params":{}}`,
		`{"intent":"unknown","params":{}}`,
	}}
	h := NewChatHandler(completer, logger.NewWithWriter(&bytes.Buffer{}))

	body := `{"question": "flurble", "snapshot": ` + buildSnapshotJSON(t) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if completer.calls != 2 {
		t.Errorf("completer called %d times, want 2: unknown intent skips the explainer", completer.calls)
	}
	if !strings.Contains(rec.Body.String(), "rephrase") {
		t.Errorf("body %q does not carry the rephrase reply", rec.Body)
	}
}

func TestChat_MissingProjectionRejected(t *testing.T) {
	h := NewChatHandler(&scriptedCompleter{}, logger.NewWithWriter(&bytes.Buffer{}))

	body := `{"question": "What's my balance?", "snapshot": {"currentBalance": "100"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// buildSnapshotJSON round-trips a snapshot through the same serialization
// the HTTP boundary uses, dates as ISO-8601 text.
func buildSnapshotJSON(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	h := NewSnapshotHandler(logger.NewWithWriter(&bytes.Buffer{}))
	body := `{"transactions": [{"date": "2026-08-01", "description": "Paycheck", "amount": "2500"}], "startingBalance": "1300"}`
	h.Build(rec, httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("building snapshot fixture failed: %s", rec.Body)
	}
	return rec.Body.String()
}
