package chat

import (
	"encoding/json"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"cashlens/internal/finance"
)

// EngineResult is a tagged union over the dispatcher's answer shapes, one
// variant per intent branch. Consumers switch on the concrete type instead
// of probing fields.
type EngineResult interface {
	engineResult()
}

// AffordabilityAnswer wraps the evaluator's result for affordability_check.
type AffordabilityAnswer struct {
	finance.AffordabilityResult
}

// BalanceAnswer answers balance_query.
type BalanceAnswer struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ProjectionAnswer answers projection_query.
type ProjectionAnswer struct {
	LowestProjectedBalance decimal.Decimal           `json:"lowestProjectedBalance"`
	LowestProjectedDate    civil.Date                `json:"lowestProjectedDate"`
	RiskFlag               bool                      `json:"riskFlag"`
	Projection             []finance.DailyProjection `json:"projection"`
}

// SpendingAnswer answers spending_query.
type SpendingAnswer struct {
	AvgDailySpend    decimal.Decimal   `json:"avgDailySpend"`
	DateRange        finance.DateRange `json:"dateRange"`
	TransactionCount int               `json:"transactionCount"`
}

// SnapshotAnswer carries the whole snapshot as context for general and
// unknown questions.
type SnapshotAnswer struct {
	finance.FinancialSnapshot
}

func (AffordabilityAnswer) engineResult() {}
func (BalanceAnswer) engineResult()       {}
func (ProjectionAnswer) engineResult()    {}
func (SpendingAnswer) engineResult()      {}
func (SnapshotAnswer) engineResult()      {}

// Dispatch maps a classified intent to the corresponding engine computation.
// Pure routing, no I/O. The returned flag reports whether a date assumption
// was made; only the affordability branch can set it, inherited from
// timeframe resolution.
func Dispatch(result IntentResult, snapshot finance.FinancialSnapshot, today civil.Date) (EngineResult, bool) {
	switch result.Intent {
	case IntentAffordabilityCheck:
		amount := amountParam(result.Params)
		targetDate, assumptionMade := finance.ResolveTimeframe(timeframeParam(result.Params), today)

		answer := finance.ComputeAffordability(amount, snapshot, targetDate)
		answer.AssumptionMade = assumptionMade

		return AffordabilityAnswer{answer}, assumptionMade

	case IntentBalanceQuery:
		return BalanceAnswer{CurrentBalance: snapshot.CurrentBalance}, false

	case IntentProjectionQuery:
		return ProjectionAnswer{
			LowestProjectedBalance: snapshot.LowestProjectedBalance,
			LowestProjectedDate:    snapshot.LowestProjectedDate,
			RiskFlag:               snapshot.RiskFlag,
			Projection:             snapshot.Projection,
		}, false

	case IntentSpendingQuery:
		return SpendingAnswer{
			AvgDailySpend:    snapshot.AvgDailySpend,
			DateRange:        snapshot.DateRange,
			TransactionCount: snapshot.TransactionCount,
		}, false

	default:
		// general, unknown, or anything else: the full snapshot is the context.
		return SnapshotAnswer{snapshot}, false
	}
}

// amountParam pulls the purchase amount out of classifier params. The pass-2
// guard keeps amount-less affordability checks from reaching here; the zero
// default is defensive.
func amountParam(params map[string]any) decimal.Decimal {
	switch v := params["amount"].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func timeframeParam(params map[string]any) string {
	if s, ok := params["timeframe"].(string); ok {
		return s
	}
	return ""
}
