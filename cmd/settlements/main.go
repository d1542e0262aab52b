package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"clinic-settlements/internal/config"
	"clinic-settlements/internal/domain"
	"clinic-settlements/internal/gateway"
	"clinic-settlements/internal/logger"
	"clinic-settlements/internal/usecase"
)

func main() {
	// Define command-line flags
	mode := flag.String("mode", "", "Operation: daily, monthly, close-month, get, mark-paid (required)")
	professionalID := flag.String("professional", "", "Professional id (required except for mark-paid)")
	dateStr := flag.String("date", "", "Target date for daily mode (YYYY-MM-DD)")
	month := flag.Int("month", 0, "Target month for monthly/close-month mode (1-12)")
	year := flag.Int("year", 0, "Target year for monthly/close-month mode")
	settlementType := flag.String("type", "daily", "Settlement type for get mode: daily or monthly")
	idStr := flag.String("id", "", "Settlement id for mark-paid mode")
	flag.Parse()

	if *mode == "" {
		fmt.Println("Error: -mode is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	zapLog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zapLog.Sync() }()

	// --- Dependency Injection (Wiring the application) ---
	// Manual wiring, which is clear and simple for a batch binary.
	db, err := gateway.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	appointmentRepo := gateway.NewGormAppointmentRepository(db)
	professionalRepo := gateway.NewGormProfessionalRepository(db)
	settlementRepo := gateway.NewGormSettlementRepository(db)
	settlementUseCase := usecase.NewSettlementUseCase(appointmentRepo, professionalRepo, settlementRepo, zapLog)

	ctx := context.Background()

	// --- Execute the requested operation ---
	var result any
	switch *mode {
	case "daily":
		date := mustParseDate(*dateStr)
		rate := mustCurrentRate(ctx, settlementUseCase, *professionalID)
		result, err = settlementUseCase.RunDaily(ctx, usecase.DailyRunRequest{
			ProfessionalID: *professionalID,
			Date:           date,
			Rate:           rate,
		})
	case "monthly":
		rate := mustCurrentRate(ctx, settlementUseCase, *professionalID)
		result, err = settlementUseCase.RunMonthly(ctx, usecase.MonthlyRunRequest{
			ProfessionalID: *professionalID,
			Month:          *month,
			Year:           *year,
			Rate:           rate,
		})
	case "close-month":
		rate := mustCurrentRate(ctx, settlementUseCase, *professionalID)
		result, err = settlementUseCase.CloseMonth(ctx, usecase.MonthlyRunRequest{
			ProfessionalID: *professionalID,
			Month:          *month,
			Year:           *year,
			Rate:           rate,
		})
	case "get":
		var periodKey string
		if domain.SettlementType(*settlementType) == domain.SettlementTypeMonthly {
			periodKey = domain.MonthlyPeriodKey(*month, *year)
		} else {
			periodKey = domain.DailyPeriodKey(mustParseDate(*dateStr))
		}
		result, err = settlementUseCase.GetSettlement(ctx, *professionalID, domain.SettlementType(*settlementType), periodKey)
	case "mark-paid":
		id, parseErr := uuid.Parse(*idStr)
		if parseErr != nil {
			log.Fatalf("Error parsing settlement id: %v", parseErr)
		}
		if err = settlementUseCase.MarkSettlementPaid(ctx, id); err == nil {
			result = map[string]string{"settlement_id": id.String(), "status": string(domain.SettlementStatusPaid)}
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("Settlement operation failed: %v", err)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON output: %v", err)
	}
	fmt.Println(string(output))
}

func mustParseDate(value string) time.Time {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		log.Fatalf("Error parsing date: %v", err)
	}
	return date
}

func mustCurrentRate(ctx context.Context, uc *usecase.SettlementUseCase, professionalID string) decimal.Decimal {
	rate, err := uc.CurrentRate(ctx, professionalID)
	if err != nil {
		log.Fatalf("Error resolving commission rate: %v", err)
	}
	return rate
}
