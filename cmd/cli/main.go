package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"cashlens/internal/finance"
	"cashlens/internal/logger"
)

// Offline statement analysis: parse a CSV export, build the snapshot and
// print the forecast. No model calls, deterministic output only.
func main() {
	var (
		file    = flag.String("file", "", "path to the bank statement CSV")
		balance = flag.String("balance", "", "starting balance, required when the statement has no balance column")
	)
	flag.Parse()

	log := logger.New()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: cli -file statement.csv [-balance 1200]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read statement")
	}

	parsed, err := finance.ParseCSV(string(data))
	if err != nil {
		log.Fatal().Err(err).Msg("Statement rejected")
	}

	startingBalance := parsed.StartingBalance
	if parsed.NeedsBalanceInput {
		if *balance == "" {
			log.Fatal().Msg("Statement has no balance column; pass -balance")
		}
		startingBalance, err = decimal.NewFromString(*balance)
		if err != nil {
			log.Fatal().Str("balance", *balance).Msg("Starting balance must be a number")
		}
	}

	today := civil.DateOf(time.Now())
	snapshot := finance.BuildSnapshot(parsed.Transactions, startingBalance, today)

	fmt.Printf("Transactions:        %d (%s to %s)\n", snapshot.TransactionCount, snapshot.DateRange.From, snapshot.DateRange.To)
	fmt.Printf("Current balance:     $%s\n", snapshot.CurrentBalance.StringFixed(2))
	fmt.Printf("Avg daily spend:     $%s\n", snapshot.AvgDailySpend.StringFixed(2))
	fmt.Printf("7-day projected low: $%s on %s\n", snapshot.LowestProjectedBalance.StringFixed(2), snapshot.LowestProjectedDate)
	fmt.Println()
	fmt.Println("Projection:")
	for _, entry := range snapshot.Projection {
		fmt.Printf("  %s  $%s\n", entry.Date, entry.ProjectedBalance.StringFixed(2))
	}

	if snapshot.RiskFlag {
		fmt.Println()
		fmt.Println("WARNING: projected balance drops below $500 within 7 days.")
	}
}
