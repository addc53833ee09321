package etl

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/database"
	"github.com/js051/Course-Management/internal/logic"
)

var sheetRows = [][]string{
	{"時間戳記", "姓名", " 電子信箱 ", "所屬單位", "聯絡電話"},
	{"2025/1/1 10:00", "王小明", "ming@example.com", "台北地院", "0912345678"},
	{"2025/1/1 10:05", "李小華", "", "臺中地方法院", "0922333444"},
	{"2025/1/1 10:10", "陳大文", "dawen@example.com", "完全不相關單位", ""},
}

func newTestPipeline(t *testing.T, client SheetClient) (*Pipeline, *logic.MemberLogic, string) {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	return newTestPipelineWithDB(t, client, db)
}

func newTestPipelineWithDB(t *testing.T, client SheetClient, db *gorm.DB) (*Pipeline, *logic.MemberLogic, string) {
	t.Helper()
	members := logic.NewMemberLogic(db)
	fetcher := NewFetcher(client, 3, time.Second)
	fetcher.sleep = func(time.Duration) {}
	exportPath := filepath.Join(t.TempDir(), "out", "final_data.csv")
	pipeline := NewPipeline(members, fetcher, NewNormalizer(80), "sheet-id", "res", exportPath)
	return pipeline, members, exportPath
}

func TestPipelineRun(t *testing.T) {
	pipeline, members, exportPath := newTestPipeline(t, &fakeSheetClient{rows: sheetRows})

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, 1, report.SkippedNoEmail)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "完全不相關單位", report.Warnings[0].Input)

	// 別名 + 模糊比對後寫入的是標準單位名稱
	ming, err := members.GetMemberByEmail("ming@example.com")
	require.NoError(t, err)
	require.NotNil(t, ming)
	assert.Equal(t, "臺北地方法院", ming.Affiliation)

	// 分數不足門檻時保留原值
	dawen, err := members.GetMemberByEmail("dawen@example.com")
	require.NoError(t, err)
	require.NotNil(t, dawen)
	assert.Equal(t, "完全不相關單位", dawen.Affiliation)

	// 無信箱的資料列不寫入資料庫
	count, err := members.CountMembers()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	assertExportFile(t, exportPath)
}

func TestPipelineIdempotent(t *testing.T) {
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	pipeline, members, _ := newTestPipelineWithDB(t, &fakeSheetClient{rows: sheetRows}, db)
	_, err = pipeline.Run(context.Background())
	require.NoError(t, err)

	countAfterFirst, err := members.CountMembers()
	require.NoError(t, err)

	// 來源不變時第二次執行不得產生重複學員
	again, _, _ := newTestPipelineWithDB(t, &fakeSheetClient{rows: sheetRows}, db)
	report, err := again.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 2, report.Duplicates)

	countAfterSecond, err := members.CountMembers()
	require.NoError(t, err)
	assert.Equal(t, countAfterFirst, countAfterSecond)
}

func TestPipelineAbortsBeforeWritesOnFetchFailure(t *testing.T) {
	client := &fakeSheetClient{
		script: []error{transientErr(), transientErr(), transientErr()},
	}
	pipeline, members, exportPath := newTestPipeline(t, client)

	_, err := pipeline.Run(context.Background())
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)

	count, err := members.CountMembers()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	_, statErr := os.Stat(exportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineCredentialError(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, NewLazyGoogleSheetClient(""))

	_, err := pipeline.Run(context.Background())
	assert.ErrorIs(t, err, ErrCredentials)
}

func assertExportFile(t *testing.T, path string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "export must start with UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // 欄位列 + 三筆資料，含無信箱者
	assert.Equal(t, []string{"timestamp", "name", "email", "affiliation", "phone"}, records[0])

	// 無信箱的資料列仍出現在匯出檔
	assert.Equal(t, "李小華", records[2][1])
	assert.Equal(t, "", records[2][2])
}
