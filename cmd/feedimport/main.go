package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/verifyap/threeway/internal/ingestion"
	"github.com/verifyap/threeway/internal/orders"
	"github.com/verifyap/threeway/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file  = flag.String("file", "", "CSV or XLSX purchase-order feed to import (required)")
		sheet = flag.String("sheet", "", "worksheet to read from an XLSX feed (defaults to the first sheet)")
		db    = flag.String("db", "orders.db", "SQLite database to import into")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(context.Background(), *file, *sheet, *db, logger); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file, sheet, dbPath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	rows, err := ingestion.ParseFile(file, sheet)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	// Reject the feed before touching the database if it would not load.
	stats, err := orders.NewIndex().Load(rows)
	if err != nil {
		return fmt.Errorf("validate %s: %w", file, err)
	}

	db, err := repository.InitDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repository.NewFeedRepo(db).ReplaceAll(ctx, rows)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("[feedimport] feed imported",
		"file", file,
		"db", dbPath,
		"rows", n,
		"orders", stats.TotalOrders,
		"vendors", stats.UniqueVendors,
		"total_value", stats.TotalValue)
	return nil
}
