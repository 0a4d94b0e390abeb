// Package chat routes natural-language questions about a financial snapshot
// through an external classifier into deterministic engine computations, and
// hands the structured results to an external explainer.
package chat

import (
	"context"
	"encoding/json"

	"cashlens/internal/llm"
)

// Intent is the classified purpose of a user question, a closed set.
type Intent string

const (
	IntentBalanceQuery       Intent = "balance_query"
	IntentProjectionQuery    Intent = "projection_query"
	IntentAffordabilityCheck Intent = "affordability_check"
	IntentSpendingQuery      Intent = "spending_query"
	IntentGeneral            Intent = "general"
	IntentUnknown            Intent = "unknown"
)

// ParseIntent maps classifier output to the intent enum. Anything the model
// invents outside the set collapses to unknown.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentBalanceQuery, IntentProjectionQuery, IntentAffordabilityCheck,
		IntentSpendingQuery, IntentGeneral:
		return Intent(s)
	}
	return IntentUnknown
}

// IntentResult is one classified question: the intent plus any extracted
// parameters (amount, timeframe). Produced once per question and consumed
// immediately by the dispatcher.
type IntentResult struct {
	Intent Intent         `json:"intent"`
	Params map[string]any `json:"params"`
}

func unknownResult() IntentResult {
	return IntentResult{Intent: IntentUnknown, Params: map[string]any{}}
}

// callClassifier performs a single classification call. A transport failure
// is an error; a malformed response is not — it degrades to the unknown
// sentinel so that garbage model output never propagates as a failure.
func callClassifier(ctx context.Context, c llm.Completer, system, question string) (IntentResult, error) {
	raw, err := c.Complete(ctx, system, question)
	if err != nil {
		return IntentResult{}, err
	}

	var parsed struct {
		Intent string         `json:"intent"`
		Params map[string]any `json:"params"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &parsed); err != nil {
		return unknownResult(), nil
	}

	result := IntentResult{Intent: ParseIntent(parsed.Intent), Params: parsed.Params}
	if result.Params == nil {
		result.Params = map[string]any{}
	}
	return result, nil
}

// ExtractIntent classifies a question with a strict two-call budget.
//
// Pass 1 uses the strict prompt; any non-unknown result is final. Pass 2
// runs only when pass 1 returned unknown, under the permissive prompt.
// A pass-2 affordability_check without an explicit amount downgrades to
// unknown — affordability is never dispatched without an amount.
func ExtractIntent(ctx context.Context, c llm.Completer, question string) (IntentResult, error) {
	pass1, err := callClassifier(ctx, c, strictIntentPrompt, question)
	if err != nil {
		return IntentResult{}, err
	}
	if pass1.Intent != IntentUnknown {
		return pass1, nil
	}

	pass2, err := callClassifier(ctx, c, softIntentPrompt, question)
	if err != nil {
		return IntentResult{}, err
	}
	if pass2.Intent == IntentUnknown {
		return unknownResult(), nil
	}

	if pass2.Intent == IntentAffordabilityCheck {
		if amount, ok := pass2.Params["amount"]; !ok || amount == nil {
			return unknownResult(), nil
		}
	}

	return pass2, nil
}
