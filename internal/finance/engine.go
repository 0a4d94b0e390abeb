package finance

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Fixed parameters of the forecast. These are product constants, not
// configuration: every snapshot and affordability answer is defined
// against the same threshold and windows.
const (
	// ProjectionDays is the forward window used for all depletion forecasting.
	ProjectionDays = 7

	// SpendLookbackDays is the trailing window for the average daily spend.
	SpendLookbackDays = 30
)

// LiquidityRiskThreshold is the balance below which any projected day trips
// the risk flag and affordability fails.
var LiquidityRiskThreshold = decimal.NewFromInt(500)

// ComputeBalance sums all signed transaction amounts. Empty input yields zero.
func ComputeBalance(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// ComputeAvgDailySpend returns the daily burn rate: the absolute value of all
// debits dated within the closed window [asOf-SpendLookbackDays, asOf],
// divided by SpendLookbackDays. Credits never participate. The result is
// never negative; it is zero when no qualifying debits exist.
func ComputeAvgDailySpend(txs []Transaction, asOf civil.Date) decimal.Decimal {
	cutoff := asOf.AddDays(-SpendLookbackDays)

	debits := decimal.Zero
	for _, t := range txs {
		if t.Amount.IsNegative() && !t.Date.Before(cutoff) && !t.Date.After(asOf) {
			debits = debits.Add(t.Amount)
		}
	}

	return debits.Abs().Div(decimal.NewFromInt(SpendLookbackDays))
}

// ComputeProjection projects the balance forward by linear depletion at the
// given daily rate. Entry i (1-based) is dated today+i with balance
// balance - rate*i. No compounding, no reinvestment of credits.
func ComputeProjection(balance, avgDailySpend decimal.Decimal, days int, today civil.Date) []DailyProjection {
	projection := make([]DailyProjection, 0, days)
	for i := 1; i <= days; i++ {
		projection = append(projection, DailyProjection{
			Date:             today.AddDays(i),
			ProjectedBalance: balance.Sub(avgDailySpend.Mul(decimal.NewFromInt(int64(i)))),
		})
	}
	return projection
}

// BuildSnapshot computes the full financial snapshot as of today. The
// caller-supplied starting balance is authoritative: it may come from the
// statement's own balance column or from manual entry, and the projection
// depletes from it rather than from the transaction sum.
func BuildSnapshot(txs []Transaction, startingBalance decimal.Decimal, today civil.Date) FinancialSnapshot {
	avgDailySpend := ComputeAvgDailySpend(txs, today)
	projection := ComputeProjection(startingBalance, avgDailySpend, ProjectionDays, today)

	// First occurrence wins on ties.
	lowest := projection[0]
	for _, entry := range projection[1:] {
		if entry.ProjectedBalance.LessThan(lowest.ProjectedBalance) {
			lowest = entry
		}
	}

	riskFlag := false
	for _, entry := range projection {
		if entry.ProjectedBalance.LessThan(LiquidityRiskThreshold) {
			riskFlag = true
			break
		}
	}

	dateRange := DateRange{From: today, To: today}
	for i, t := range txs {
		if i == 0 || t.Date.Before(dateRange.From) {
			dateRange.From = t.Date
		}
		if i == 0 || t.Date.After(dateRange.To) {
			dateRange.To = t.Date
		}
	}

	return FinancialSnapshot{
		CurrentBalance:         startingBalance,
		AvgDailySpend:          avgDailySpend,
		Projection:             projection,
		LowestProjectedBalance: lowest.ProjectedBalance,
		LowestProjectedDate:    lowest.Date,
		RiskFlag:               riskFlag,
		TransactionCount:       len(txs),
		DateRange:              dateRange,
	}
}

// ComputeAffordability evaluates a hypothetical purchase of amount on
// targetDate against the snapshot's projection. Dates inside the projection
// window use the closest entry (first entry wins ties); dates past the last
// entry extrapolate at the snapshot's burn rate. AssumptionMade is left
// false; the dispatcher owns how targetDate was obtained.
//
// The amount must be well-formed; validation is the caller's job.
func ComputeAffordability(amount decimal.Decimal, snapshot FinancialSnapshot, targetDate civil.Date) AffordabilityResult {
	closest := snapshot.Projection[0]
	minDiff := absDays(closest.Date, targetDate)
	for _, entry := range snapshot.Projection[1:] {
		if diff := absDays(entry.Date, targetDate); diff < minDiff {
			minDiff = diff
			closest = entry
		}
	}

	last := snapshot.Projection[len(snapshot.Projection)-1]

	var projectedBalance decimal.Decimal
	if targetDate.After(last.Date) {
		extraDays := targetDate.DaysSince(last.Date)
		projectedBalance = last.ProjectedBalance.Sub(snapshot.AvgDailySpend.Mul(decimal.NewFromInt(int64(extraDays))))
	} else {
		projectedBalance = closest.ProjectedBalance
	}

	remaining := projectedBalance.Sub(amount)

	return AffordabilityResult{
		Amount:                 amount,
		TargetDate:             targetDate,
		ProjectedBalanceAtDate: projectedBalance,
		RemainingAfterPurchase: remaining,
		CanAfford:              remaining.GreaterThanOrEqual(LiquidityRiskThreshold),
		AssumptionMade:         false,
	}
}

func absDays(a, b civil.Date) int {
	d := a.DaysSince(b)
	if d < 0 {
		return -d
	}
	return d
}
