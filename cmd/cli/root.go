package main

import (
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/database"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course-cli",
		Short: "課程資料管理 CLI 工具",
	}
	cmd.AddCommand(newListMembersCmd())
	cmd.AddCommand(newImportCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase 每個指令各自開啟連線，用完即關
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.Init(cfg.Database)
}
