package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// Service runs the table bootstrap as a background job: once at startup and
// then on a cron schedule, guarded by a host-local lock so concurrent
// instances do not race on CreateTable.
type Service struct {
	config  *models.Config
	logger  logger.Logger
	cronJob *cron.Cron
	lock    *LockManager
	setup   *InfrastructureSetup
	ownerID string

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
}

// NewService creates the bootstrap worker
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	setup, err := NewInfrastructureSetup(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure setup: %w", err)
	}

	lockPath := fmt.Sprintf("/tmp/api-transacciones-bootstrap-%s.lock", cfg.AppEnv)
	lock := NewLockManager(lockPath, 30*time.Minute, cfg.AppEnv)

	return &Service{
		config:  cfg,
		logger:  log,
		cronJob: cron.New(),
		lock:    lock,
		setup:   setup,
		ownerID: ownerID,
	}, nil
}

// StartInBackground runs the bootstrap immediately and schedules hourly
// re-checks.
func (s *Service) StartInBackground() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("worker is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.isRunning = true

	if err := s.cronJob.AddFunc("@hourly", func() { s.run(ctx) }); err != nil {
		cancel()
		s.isRunning = false
		return fmt.Errorf("failed to schedule bootstrap job: %w", err)
	}

	go s.run(ctx)
	s.cronJob.Start()

	s.logger.Infof("Infrastructure worker started (owner %s)", s.ownerID)
	return nil
}

// Stop halts the schedule and cancels any in-flight run.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cronJob.Stop()
	s.cancel()
	s.isRunning = false
	s.logger.Info("Infrastructure worker stopped")
}

func (s *Service) run(ctx context.Context) {
	if _, err := s.lock.AcquireLock(s.ownerID); err != nil {
		s.logger.Debugf("Skipping bootstrap run: %v", err)
		return
	}
	defer func() {
		if err := s.lock.ReleaseLock(s.ownerID); err != nil {
			s.logger.Warnf("Failed to release bootstrap lock: %v", err)
		}
	}()

	if err := s.setup.Execute(ctx); err != nil {
		s.logger.Errorf("Infrastructure bootstrap failed: %v", err)
		return
	}
	s.logger.Info("Infrastructure bootstrap completed")
}
