package etl

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetClient 試算表來源的抽象介面。重試計時的測試需要替身，
// 因此唯一觸網的元件必須可以被替換。
type SheetClient interface {
	// ReadRows 讀取指定工作表的全部儲存格，第一列為欄位名稱
	ReadRows(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error)
}

// GoogleSheetClient 透過 Google Sheets API 讀取資料
type GoogleSheetClient struct {
	svc *sheets.Service
}

// NewGoogleSheetClient 以 service account JSON 憑證建立用戶端。
// 憑證缺漏或無法解析時在任何網路呼叫前就回傳 ErrCredentials。
func NewGoogleSheetClient(ctx context.Context, credentialsJSON string) (*GoogleSheetClient, error) {
	if credentialsJSON == "" {
		return nil, ErrCredentials
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	return &GoogleSheetClient{svc: svc}, nil
}

// NewLazyGoogleSheetClient 延後到第一次讀取才建立實際用戶端，
// 讓伺服器在沒有憑證時也能啟動；憑證錯誤會在匯入執行時、
// 任何網路呼叫之前以 ErrCredentials 浮現。
func NewLazyGoogleSheetClient(credentialsJSON string) SheetClient {
	return &lazyGoogleClient{credentials: credentialsJSON}
}

type lazyGoogleClient struct {
	credentials string
	client      *GoogleSheetClient
}

func (c *lazyGoogleClient) ReadRows(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	if c.client == nil {
		client, err := NewGoogleSheetClient(ctx, c.credentials)
		if err != nil {
			return nil, err
		}
		c.client = client
	}
	return c.client.ReadRows(ctx, spreadsheetID, worksheet)
}

func (c *GoogleSheetClient) ReadRows(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
