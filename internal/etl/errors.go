package etl

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrCredentials 憑證缺漏或無法解析，屬致命設定錯誤，不重試
var ErrCredentials = errors.New("GOOGLE_CREDENTIALS 未設定或格式不正確")

// UnavailableError 重試額度耗盡後的致命錯誤
type UnavailableError struct {
	SpreadsheetID string
	Worksheet     string
	Attempts      int
	Err           error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("重試 %d 次後仍無法打開試算表 '%s'/'%s'，請檢查網路與服務狀態",
		e.Attempts, e.SpreadsheetID, e.Worksheet)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsTransient 判斷是否為暫時性服務錯誤。優先看結構化的 HTTP 狀態碼，
// 包裝過的錯誤退回字串比對（"503" / "ServiceUnavailable"）。
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable
	}
	msg := err.Error()
	return strings.Contains(msg, "503") || strings.Contains(msg, "ServiceUnavailable")
}
