package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayplan-tracker/internal/config"
	"dayplan-tracker/internal/notify"
	"dayplan-tracker/internal/reminder"
	"dayplan-tracker/internal/repository"
	"dayplan-tracker/internal/server"
	"dayplan-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	users := repository.NewUserRepository(db)
	plans := repository.NewPlanRepository(db)
	drafts := repository.NewDraftRepository(db)
	notes := repository.NewNotificationRepository(db)

	var delivery notify.Notifier
	if cfg.TelegramToken != "" {
		delivery, err = notify.NewTelegramNotifier(cfg.TelegramToken, users)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
	} else {
		log.Println("[info] TELEGRAM_TOKEN not set, notifications are log-only")
		delivery = notify.NewLogNotifier()
	}
	notifier := notify.NewDispatcher(notes, delivery)

	svc := service.NewPlanService(plans, users, drafts, notifier)

	if cfg.ReminderTime != "" {
		sched := reminder.NewScheduler(time.Local)
		nudge := reminder.New(plans, notifier)
		if _, err := sched.ScheduleDaily(cfg.ReminderTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := nudge.Run(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("reminder: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reminder: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	e := server.New(svc, users, notes)
	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	}()
	log.Printf("[info] day plan tracker listening on %s", cfg.ListenAddr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
