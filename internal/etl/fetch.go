package etl

import (
	"context"
	"strings"
	"time"

	"github.com/js051/Course-Management/internal/logger"
)

// Row 一筆匯入資料，欄位名稱對應值
type Row map[string]string

// Get 取欄位值，欄位不存在時回傳空字串
func (r Row) Get(key string) string {
	return r[key]
}

// Table 試算表內容的記憶體表示。Headers 保留欄位順序，
// 欄位名稱已去除頭尾空白。
type Table struct {
	Headers []string
	Rows    []Row
}

// RenameHeaders 依對照表改名欄位，表中沒有的欄位保持原名
func (t *Table) RenameHeaders(mapping map[string]string) {
	renamed := make(map[string]string, len(t.Headers))
	for i, h := range t.Headers {
		if newName, ok := mapping[h]; ok {
			renamed[h] = newName
			t.Headers[i] = newName
		}
	}
	for _, row := range t.Rows {
		for old, newName := range renamed {
			if v, ok := row[old]; ok {
				delete(row, old)
				row[newName] = v
			}
		}
	}
}

// Fetcher 拉取試算表資料，對暫時性錯誤做固定次數、固定延遲的重試
type Fetcher struct {
	client  SheetClient
	retries int
	delay   time.Duration
	sleep   func(time.Duration) // 測試時注入，避免真正等待
}

// NewFetcher 建立 Fetcher。retries 與 delay 非正數時套用預設值（3 次 / 3 秒）。
func NewFetcher(client SheetClient, retries int, delay time.Duration) *Fetcher {
	if retries <= 0 {
		retries = 3
	}
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &Fetcher{
		client:  client,
		retries: retries,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// Fetch 讀取整張工作表並轉成 Table。暫時性錯誤（503）最多重試 retries 次，
// 每次間隔 delay；其他錯誤立即失敗。重試耗盡回傳 *UnavailableError。
func (f *Fetcher) Fetch(ctx context.Context, spreadsheetID, worksheet string) (*Table, error) {
	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		rows, err := f.client.ReadRows(ctx, spreadsheetID, worksheet)
		if err == nil {
			return buildTable(rows), nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
		logger.Warn("第 %d 次嘗試開啟 '%s'/'%s' 時遇到 503，等待 %s 後重試...",
			attempt, spreadsheetID, worksheet, f.delay)
		f.sleep(f.delay)
	}
	return nil, &UnavailableError{
		SpreadsheetID: spreadsheetID,
		Worksheet:     worksheet,
		Attempts:      f.retries,
		Err:           lastErr,
	}
}

// buildTable 第一列當欄位名稱（去頭尾空白），其餘列轉成 Row。
// 資料列比欄位短時補空字串。
func buildTable(rows [][]string) *Table {
	table := &Table{}
	if len(rows) == 0 {
		return table
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	table.Headers = headers

	for _, cells := range rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
