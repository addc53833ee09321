package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/etl"
	"github.com/js051/Course-Management/internal/logger"
)

// ImportJob 定期執行匯入流程的任務
type ImportJob struct {
	pipeline *etl.Pipeline
	config   *config.Config
}

// NewImportJob 建立匯入任務
func NewImportJob(pipeline *etl.Pipeline, cfg *config.Config) *ImportJob {
	return &ImportJob{
		pipeline: pipeline,
		config:   cfg,
	}
}

// GetName 取得任務名稱
func (j *ImportJob) GetName() string {
	return "sheet_import"
}

// GetSchedule 取得排程設定
func (j *ImportJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.ETL.ScheduleInterval) * time.Second)
}

// Execute 執行任務。匯入流程自身保證失敗不會留下半套寫入。
func (j *ImportJob) Execute() {
	logger.Info("Starting scheduled sheet import")

	report, err := j.pipeline.Run(context.Background())
	if err != nil {
		logger.Error("Scheduled import failed: %v", err)
		return
	}
	logger.Info("Scheduled import finished: %d fetched, %d inserted", report.Fetched, report.Inserted)
}
