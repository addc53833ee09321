package main

import (
	"github.com/gin-gonic/gin"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/database"
	"github.com/js051/Course-Management/internal/etl"
	"github.com/js051/Course-Management/internal/logger"
	"github.com/js051/Course-Management/internal/router"
	"github.com/js051/Course-Management/internal/scheduler"
)

func main() {
	// 加載配置
	cfg := config.Load()

	// 依設定重建日誌器
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化資料庫
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 組裝匯入流程（GUI 與排程共用）
	pipeline := etl.NewPipelineFromConfig(db, cfg)

	// 設置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, pipeline, cfg)

	// 啟動定期匯入（預設關閉）
	if manager := scheduler.Start(pipeline, cfg); manager != nil {
		defer manager.Stop()
	}

	// 啟動伺服器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var (
		l   *logger.Logger
		err error
	)
	if cfg.Output == "file" {
		l, err = logger.NewWithFile(level, cfg.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
