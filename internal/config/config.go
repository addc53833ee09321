package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/js051/Course-Management/internal/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	ETL      ETLConfig      `mapstructure:"etl"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // sqlite 或 postgres
	Path     string `mapstructure:"path"`   // sqlite 資料檔路徑
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type APIConfig struct {
	Key string `mapstructure:"key"` // X-API-Key 共用密鑰
}

// SheetsConfig Google 試算表來源設定
type SheetsConfig struct {
	Credentials   string `mapstructure:"credentials"` // service account JSON 字串
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	Worksheet     string `mapstructure:"worksheet"`
	Retries       int    `mapstructure:"retries"`
	RetryDelay    int    `mapstructure:"retry_delay"` // 秒
}

type ETLConfig struct {
	MatchThreshold    int    `mapstructure:"match_threshold"` // 模糊比對門檻 (0-100)
	ExportPath        string `mapstructure:"export_path"`
	MembersExportPath string `mapstructure:"members_export_path"`
	ScheduleEnabled   bool   `mapstructure:"schedule_enabled"`
	ScheduleInterval  int    `mapstructure:"schedule_interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, file
	File   string `mapstructure:"file"`
}

func Load() *Config {
	// 先載入 .env，讓 GOOGLE_CREDENTIALS 等變數進入環境
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded: %v", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/course-management")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "course_data.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "course_management")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("api.key", "your-secret-key")
	viper.SetDefault("sheets.spreadsheet_id", "")
	viper.SetDefault("sheets.worksheet", "res")
	viper.SetDefault("sheets.retries", 3)
	viper.SetDefault("sheets.retry_delay", 3)
	viper.SetDefault("etl.match_threshold", 80)
	viper.SetDefault("etl.export_path", "data/final_data.csv")
	viper.SetDefault("etl.members_export_path", "data/export.csv")
	viper.SetDefault("etl.schedule_enabled", false)
	viper.SetDefault("etl.schedule_interval", 3600)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 環境變數覆蓋設定檔
	viper.AutomaticEnv()
	viper.BindEnv("api.key", "VALID_API_KEY")
	viper.BindEnv("sheets.credentials", "GOOGLE_CREDENTIALS")

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
