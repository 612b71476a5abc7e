package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/kayan2004/dracofit-backend/internal/clock"
	"github.com/kayan2004/dracofit-backend/internal/config" // Internal config loader
	"github.com/kayan2004/dracofit-backend/internal/database"
	"github.com/kayan2004/dracofit-backend/internal/handler"
	"github.com/kayan2004/dracofit-backend/internal/queue"
	"github.com/kayan2004/dracofit-backend/internal/repository"
	"github.com/kayan2004/dracofit-backend/internal/router" // Internal router setup
	"github.com/kayan2004/dracofit-backend/internal/scheduler"
	"github.com/kayan2004/dracofit-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()
	logger := config.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.Timezone)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: caching and rate limiting degrade to no-ops
	// without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warnw("redis unavailable, cache and rate limit disabled")
	}

	// The engine clock. Outside prod it is a fake that starts at real
	// time and can be pinned through the debug endpoints.
	var (
		clk  clock.Clock
		fake *clock.Fake
	)
	if cfg.IsProd() {
		clk = clock.NewSystem(cfg.Timezone)
	} else {
		fake = clock.NewFake(time.Time{})
		clk = fake
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	pets := repository.NewPetRepo(db)
	schedules := repository.NewScheduleRepo(db)
	plans := repository.NewWorkoutPlanRepo(db)
	workoutLogs := repository.NewWorkoutLogRepo(db)
	reschedules := repository.NewRescheduleRepo(db)
	outbox := repository.NewOutboxRepo(db)

	petSvc := service.NewPetService(pets, schedules, users, clk, logger)
	streakSvc := service.NewStreakService(pets, schedules, clk, logger)
	scheduleSvc := service.NewScheduleService(schedules, reschedules, clk, logger)
	rescheduleSvc := service.NewRescheduleService(users, schedules, workoutLogs, reschedules, clk, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Signup events: the outbox relay pushes them to RabbitMQ, the
	// consumer turns them into default pets.
	relay := service.NewOutboxRelay(outbox, queue.Publisher{}, cfg.OutboxPollInterval, logger)
	go relay.Run(ctx)
	go queue.StartUserCreatedConsumer(ctx, petSvc, logger)

	// Background jobs: nightly decay, skipped-workout rescheduling and
	// the weekly reschedule cleanup.
	jobs := scheduler.New(clk, logger,
		scheduler.Daily("health-decay", cfg.DecayHour, func(ctx context.Context) {
			petSvc.ApplyDailyHealthDecayToAllActivePets(ctx)
		}),
		scheduler.Daily("skipped-workouts", cfg.RescheduleHour, func(ctx context.Context) {
			rescheduleSvc.CheckSkippedWorkouts(ctx)
		}),
		scheduler.Weekly("reschedule-cleanup", cfg.CleanupWeekday, cfg.CleanupHour, func(ctx context.Context) {
			rescheduleSvc.CleanupOldReschedules(ctx)
		}),
	)
	jobs.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAPI(e, cfg.JWTSecret, rdb,
		handler.NewPetHandler(petSvc),
		handler.NewScheduleHandler(scheduleSvc),
		handler.NewWorkoutPlanHandler(plans),
		handler.NewWorkoutLogHandler(workoutLogs, plans, streakSvc, petSvc, clk, logger),
	)
	router.RegisterAdmin(e, cfg.JWTSecret, handler.NewPetHandler(petSvc))
	if !cfg.IsProd() {
		router.RegisterDebug(e, cfg.JWTSecret, handler.NewDebugHandler(fake, petSvc, rescheduleSvc))
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutCtx)
	}()

	addr := ":" + cfg.Port
	logger.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Infow("server stopped", "reason", err)
	}
}
