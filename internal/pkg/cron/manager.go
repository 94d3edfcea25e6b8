package cron

import (
	"Sabzee/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	storageCleanupJob *job.StorageCleanupJob
}

func NewCronManager(storageCleanupJob *job.StorageCleanupJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		storageCleanupJob: storageCleanupJob,
	}
}

// RegisterJobs wires the scheduled jobs.
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.storageCleanupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("cron engine stopped")
	s.engine.Stop()
}
