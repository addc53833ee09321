package scheduler

import (
	"github.com/go-co-op/gocron/v2"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/etl"
	"github.com/js051/Course-Management/internal/logger"
)

// Manager 排程管理器，負責定期匯入任務
type Manager struct {
	scheduler gocron.Scheduler
	pipeline  *etl.Pipeline
	config    *config.Config
}

// NewManager 建立排程管理器
func NewManager(pipeline *etl.Pipeline, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		pipeline:  pipeline,
		config:    cfg,
	}
}

// Start 啟動排程。未啟用定期匯入時回傳 nil。
func Start(pipeline *etl.Pipeline, cfg *config.Config) *Manager {
	if !cfg.ETL.ScheduleEnabled {
		return nil
	}

	manager := NewManager(pipeline, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("Scheduler started, import interval %d seconds", cfg.ETL.ScheduleInterval)
	return manager
}

// RegisterJobs 註冊所有任務
func (m *Manager) RegisterJobs() {
	job := NewImportJob(m.pipeline, m.config)
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止排程管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Scheduler stopped")
}
