package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/js051/Course-Management/internal/model"
)

// utf8BOM 讓試算表軟體正確辨識編碼（對應 utf-8-sig）
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteTableCSV 把整張表輸出成帶 BOM 的 UTF-8 CSV，覆蓋既有檔案
func WriteTableCSV(path string, table *Table) error {
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		return fmt.Errorf("寫入欄位名稱失敗: %w", err)
	}
	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, h := range table.Headers {
			record[i] = row.Get(h)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("寫入資料列失敗: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteMembersCSV 把學員總表輸出成帶 BOM 的 UTF-8 CSV（GUI 匯出路徑）
func WriteMembersCSV(path string, members []model.Member) error {
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "email", "affiliation", "phone", "created_at"}); err != nil {
		return fmt.Errorf("寫入欄位名稱失敗: %w", err)
	}
	for _, m := range members {
		record := []string{
			m.ID,
			m.Name,
			m.EmailValue(),
			m.Affiliation,
			m.Phone,
			m.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("寫入資料列失敗: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func createExportFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("建立匯出目錄失敗: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("建立匯出檔案失敗: %w", err)
	}
	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, fmt.Errorf("寫入 BOM 失敗: %w", err)
	}
	return f, nil
}
