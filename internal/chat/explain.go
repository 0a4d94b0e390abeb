package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"cashlens/internal/finance"
	"cashlens/internal/llm"
)

// unknownIntentReply is returned without an explainer call when
// classification failed; there is nothing for the model to ground on.
const unknownIntentReply = `I'm not sure what you're asking. Could you rephrase? For example: "Can I afford $200 this weekend?" or "What's my current balance?"`

// Briefing asks the explainer for a morning briefing over the snapshot.
func Briefing(ctx context.Context, c llm.Completer, snapshot finance.FinancialSnapshot) (string, error) {
	briefing, err := c.Complete(ctx, briefingPrompt, formatSnapshotForPrompt(snapshot))
	if err != nil {
		return "", fmt.Errorf("chat.Briefing: %w", err)
	}
	return briefing, nil
}

// Explain turns a dispatched engine result into prose. The engine result is
// serialized verbatim into the prompt so the explainer can only cite numbers
// the engine produced; when a date assumption was made the prompt instructs
// the model to open by stating it.
func Explain(ctx context.Context, c llm.Completer, question string, intent Intent, result EngineResult, assumptionMade bool) (string, error) {
	if intent == IntentUnknown {
		return unknownIntentReply, nil
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("chat.Explain: marshal engine result: %w", err)
	}

	assumptionNote := ""
	if assumptionMade {
		assumptionNote = "\nNote: The targetDate was inferred as the nearest weekend because no specific date was provided. State this assumption at the start of your response."
	}

	user := fmt.Sprintf("User question: %q\n\nEngine result:\n%s%s", question, payload, assumptionNote)

	explanation, err := c.Complete(ctx, explainPrompt, user)
	if err != nil {
		return "", fmt.Errorf("chat.Explain: %w", err)
	}
	return explanation, nil
}

// formatSnapshotForPrompt renders the snapshot as the plain-text block the
// briefing prompt expects.
func formatSnapshotForPrompt(s finance.FinancialSnapshot) string {
	riskLine := "No — all projected days are above $500"
	if s.RiskFlag {
		riskLine = "YES — projected balance drops below $500 within 7 days"
	}

	return fmt.Sprintf(`Financial Snapshot:
- Current balance: %s
- Average daily spend (last 30 days): %s
- 7-day projected low: %s on %s
- Liquidity risk flag: %s
- Transactions loaded: %d`,
		formatMoney(s.CurrentBalance),
		formatMoney(s.AvgDailySpend),
		formatMoney(s.LowestProjectedBalance),
		formatDate(s.LowestProjectedDate),
		riskLine,
		s.TransactionCount,
	)
}

func formatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func formatDate(d civil.Date) string {
	return d.In(time.UTC).Format("Monday, January 2")
}
