package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/etl"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "執行一次匯入流程（試算表 → 資料庫 → CSV）",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("開啟資料庫失敗: %w", err)
			}

			pipeline := etl.NewPipelineFromConfig(db, cfg)
			report, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("共 %d 筆：新增 %d、既有 %d、無信箱 %d\n",
				report.Fetched, report.Inserted, report.Duplicates, report.SkippedNoEmail)
			for _, w := range report.Warnings {
				fmt.Printf("[警告] 未匹配單位: %s (最佳匹配: %s, 分數: %d)\n",
					w.Input, w.Closest, w.Score)
			}
			return nil
		},
	}
}
