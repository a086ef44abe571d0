package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service runs the asynq consumer as an app service, plus the
// periodic scheduler when a digest cron is configured.
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	consumer  *Consumer
}

// NewService creates the queue worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	var scheduler *asynq.Scheduler
	if cron := strings.TrimSpace(cfg.DailyDigestCron); cron != "" {
		scheduler = asynq.NewScheduler(opt, nil)
		if _, err := scheduler.Register(cron, queue.NewReportDailyDigestTask(), asynq.Queue(queue.DefaultQueue)); err != nil {
			return nil, err
		}
	}
	return &Service{
		name:      "worker",
		server:    server,
		mux:       mux,
		scheduler: scheduler,
		consumer:  consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the worker until shutdown.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()
	return nil
}
