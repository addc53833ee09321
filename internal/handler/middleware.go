package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth 驗證 X-API-Key 標頭。金鑰不符回 403；
// 未設定金鑰時拒絕所有請求。
func APIKeyAuth(validKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if validKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) != 1 {
			ErrorResponse(c, http.StatusForbidden, "無效的 API Key")
			c.Abort()
			return
		}
		c.Next()
	}
}
