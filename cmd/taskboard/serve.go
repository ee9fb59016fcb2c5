package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/web"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides TASKBOARD_ADDR)")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	userSvc := service.NewUserService(userRepo)
	sessionSvc := service.NewSessionService(sessionRepo, cfg.SessionTTL)
	digestSvc := service.NewDigestService(taskRepo)

	scheduler := service.NewSchedulerService(time.Local, 30*time.Second)
	if _, err := scheduler.ScheduleInterval("session-sweep", cfg.SessionSweepInterval, func(ctx context.Context) error {
		n, err := sessionSvc.Purge(ctx)
		if err == nil && n > 0 {
			log.Printf("[info] purged %d expired sessions", n)
		}
		return err
	}); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	if cfg.DigestEnabled() {
		sender, err := notify.NewTelegramSender(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		notifier := notify.NewNotifier(sender, userRepo, digestSvc)
		if _, err := scheduler.ScheduleDaily("digest", cfg.DigestTime, func(ctx context.Context) error {
			n, err := notifier.SendDigests(ctx)
			log.Printf("[info] sent %d digests", n)
			return err
		}); err != nil {
			return fmt.Errorf("schedule digest: %w", err)
		}
	} else {
		log.Println("[info] TELEGRAM_TOKEN not set, digests disabled")
	}

	scheduler.Start()
	defer scheduler.Stop()

	server, err := web.NewServer(web.Deps{
		Tasks:      taskSvc,
		Categories: categorySvc,
		Users:      userSvc,
		Sessions:   sessionSvc,
	}, web.Options{
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
		AccessLog:     cfg.GinMode != gin.TestMode,
	})
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	log.Printf("[info] task board started with %d scheduled jobs", scheduler.Len())
	if err := server.Run(ctx, cfg.Addr); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	log.Println("[info] shutdown complete")
	return nil
}
