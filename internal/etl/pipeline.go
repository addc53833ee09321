package etl

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/logger"
	"github.com/js051/Course-Management/internal/logic"
)

// renameMap 表單欄位名稱轉成內部欄位名稱
var renameMap = map[string]string{
	"時間戳記": "timestamp",
	"姓名":   "name",
	"電子信箱": "email",
	"所屬單位": "affiliation",
	"聯絡電話": "phone",
}

// Report 單次匯入的統計結果。流程本身以資料庫與匯出檔為準，
// Report 只是額外回傳的摘要。
type Report struct {
	Fetched        int
	Inserted       int
	Duplicates     int
	SkippedNoEmail int
	Warnings       []Warning
}

// Pipeline 匯入流程：拉取 → 欄位改名 → 單位正規化 → 依信箱去重寫入 → 匯出。
// 單執行緒、線性執行；拉取失敗時在任何資料庫寫入前就中止。
//
// 注意：沒有信箱的資料列不會寫入資料庫（信箱是匯入的唯一識別鍵），
// 但仍會出現在匯出檔中。這是沿用既有行為的刻意設計。
type Pipeline struct {
	members       *logic.MemberLogic
	fetcher       *Fetcher
	normalizer    *Normalizer
	spreadsheetID string
	worksheet     string
	exportPath    string
}

// NewPipeline 建立匯入流程
func NewPipeline(members *logic.MemberLogic, fetcher *Fetcher, normalizer *Normalizer,
	spreadsheetID, worksheet, exportPath string) *Pipeline {
	return &Pipeline{
		members:       members,
		fetcher:       fetcher,
		normalizer:    normalizer,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		exportPath:    exportPath,
	}
}

// NewPipelineFromConfig 依設定組裝匯入流程（production 用戶端）
func NewPipelineFromConfig(db *gorm.DB, cfg *config.Config) *Pipeline {
	client := NewLazyGoogleSheetClient(cfg.Sheets.Credentials)
	fetcher := NewFetcher(client, cfg.Sheets.Retries, time.Duration(cfg.Sheets.RetryDelay)*time.Second)
	normalizer := NewNormalizer(cfg.ETL.MatchThreshold)
	return NewPipeline(logic.NewMemberLogic(db), fetcher, normalizer,
		cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, cfg.ETL.ExportPath)
}

// Run 執行一次匯入。正規化告警不中斷流程；Fetcher 的致命錯誤直接回傳。
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	table, err := p.fetcher.Fetch(ctx, p.spreadsheetID, p.worksheet)
	if err != nil {
		return nil, err
	}
	logger.Info("取得 %d 筆資料，欄位: %v", len(table.Rows), table.Headers)

	table.RenameHeaders(renameMap)
	logger.Info("rename 後的欄位: %v", table.Headers)

	report := &Report{Fetched: len(table.Rows)}

	// 所屬單位標準化 + 模糊比對
	for _, row := range table.Rows {
		unit := row.Get("affiliation")
		if unit == "" {
			continue
		}
		normalized, warning := p.normalizer.Normalize(unit)
		row["affiliation"] = normalized
		if warning != nil {
			logger.Warn("未匹配單位: %s (最佳匹配: %s, 分數: %d)",
				warning.Input, warning.Closest, warning.Score)
			report.Warnings = append(report.Warnings, *warning)
		}
	}

	// 依信箱去重後寫入資料庫
	for _, row := range table.Rows {
		email := row.Get("email")
		if email == "" {
			report.SkippedNoEmail++
			continue
		}
		existing, err := p.members.GetMemberByEmail(email)
		if err != nil {
			return report, fmt.Errorf("查詢既有學員失敗: %w", err)
		}
		if existing != nil {
			report.Duplicates++
			continue
		}
		if _, err := p.members.CreateMember(
			row.Get("name"), email, row.Get("affiliation"), row.Get("phone")); err != nil {
			return report, fmt.Errorf("寫入學員失敗: %w", err)
		}
		report.Inserted++
	}

	// 無論是否寫入資料庫，所有處理過的資料列都進匯出檔
	if err := WriteTableCSV(p.exportPath, table); err != nil {
		return report, err
	}

	logger.Info("ETL 處理完成：共 %d 筆，新增 %d、既有 %d、無信箱 %d，資料已存檔至 %s",
		report.Fetched, report.Inserted, report.Duplicates, report.SkippedNoEmail, p.exportPath)
	return report, nil
}
