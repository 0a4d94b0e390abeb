package finance

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction represents one normalized statement row.
// Sign convention: positive = money in, negative = money out.
type Transaction struct {
	Date        civil.Date      `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DailyProjection is the projected closing balance for one future day.
type DailyProjection struct {
	Date             civil.Date      `json:"date"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
}

// DateRange spans the earliest and latest transaction dates in a statement.
type DateRange struct {
	From civil.Date `json:"from"`
	To   civil.Date `json:"to"`
}

// FinancialSnapshot is the point-in-time summary computed from a statement:
// current balance, trailing burn rate, a 7-day depletion projection and the
// liquidity risk flag. Snapshots are rebuilt, never mutated in place.
type FinancialSnapshot struct {
	CurrentBalance         decimal.Decimal   `json:"currentBalance"`
	AvgDailySpend          decimal.Decimal   `json:"avgDailySpend"` // daily burn rate, never negative
	Projection             []DailyProjection `json:"projection"`    // ProjectionDays entries, starting tomorrow
	LowestProjectedBalance decimal.Decimal   `json:"lowestProjectedBalance"`
	LowestProjectedDate    civil.Date        `json:"lowestProjectedDate"`
	RiskFlag               bool              `json:"riskFlag"` // any projected day < LiquidityRiskThreshold
	TransactionCount       int               `json:"transactionCount"`
	DateRange              DateRange         `json:"dateRange"`
}

// AffordabilityResult answers "can I spend Amount on TargetDate".
type AffordabilityResult struct {
	Amount                 decimal.Decimal `json:"amount"`
	TargetDate             civil.Date      `json:"targetDate"`
	ProjectedBalanceAtDate decimal.Decimal `json:"projectedBalanceAtDate"`
	RemainingAfterPurchase decimal.Decimal `json:"remainingAfterPurchase"`
	CanAfford              bool            `json:"canAfford"`
	AssumptionMade         bool            `json:"assumptionMade"` // true if TargetDate was inferred, not stated
}

// ParsedCSV is the result of normalizing a statement export. When the file
// carries no running-balance column the caller must collect a starting
// balance from the user before a snapshot can be built.
type ParsedCSV struct {
	Transactions      []Transaction   `json:"transactions"`
	HasBalanceColumn  bool            `json:"hasBalanceColumn"`
	StartingBalance   decimal.Decimal `json:"startingBalance"` // meaningful only when HasBalanceColumn
	NeedsBalanceInput bool            `json:"needsBalanceInput"`
}
