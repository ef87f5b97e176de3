package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/praditya/loan-ledger/internal/config"
	"github.com/praditya/loan-ledger/internal/repository"
	"github.com/praditya/loan-ledger/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	log.Println("Starting ledger scheduler...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	scheduleRepo := repository.NewScheduleRepository(db)

	c := cron.New(cron.WithSeconds())
	setupCronJobs(c, cfg, scheduleRepo)

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, scheduleRepo repository.ScheduleRepository) {
	// Daily reminder scan at midnight
	_, err := c.AddFunc("0 0 0 * * *", func() {
		logUpcomingInstallments(scheduleRepo, cfg.Ledger.ReminderWindowDays)
	})
	if err != nil {
		log.Printf("Error scheduling reminder job: %v", err)
	}

	// Weekly past-due summary on Mondays at 9 AM
	_, err = c.AddFunc("0 0 9 * * MON", func() {
		logOverdueInstallments(scheduleRepo)
	})
	if err != nil {
		log.Printf("Error scheduling past-due summary job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}

func logUpcomingInstallments(scheduleRepo repository.ScheduleRepository, windowDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := utils.TruncateToDate(time.Now())
	installments, err := scheduleRepo.ListDueWithin(ctx, today, today.AddDate(0, 0, windowDays))
	if err != nil {
		log.Printf("Reminder scan failed: %v", err)
		return
	}

	log.Printf("%d installments due within %d days", len(installments), windowDays)
	for _, inst := range installments {
		log.Printf("loan %s: installment %s due %s, outstanding %d %s",
			inst.LoanID, inst.ID, utils.FormatDate(inst.DueDate), inst.OutstandingAmount, inst.CurrencyCode)
	}
}

func logOverdueInstallments(scheduleRepo repository.ScheduleRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	installments, err := scheduleRepo.ListOverdue(ctx, utils.TruncateToDate(time.Now()))
	if err != nil {
		log.Printf("Past-due scan failed: %v", err)
		return
	}

	log.Printf("%d installments past due", len(installments))
	for _, inst := range installments {
		log.Printf("loan %s: installment %s was due %s, outstanding %d %s",
			inst.LoanID, inst.ID, utils.FormatDate(inst.DueDate), inst.OutstandingAmount, inst.CurrencyCode)
	}
}
