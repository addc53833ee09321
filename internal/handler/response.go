package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/js051/Course-Management/internal/model"
)

// MemberOut 對外的學員資料格式，不含 created_at
type MemberOut struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Phone       string `json:"phone"`
}

// NewMemberOut 轉換資料庫模型為回應格式
func NewMemberOut(m *model.Member) MemberOut {
	return MemberOut{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.EmailValue(),
		Affiliation: m.Affiliation,
		Phone:       m.Phone,
	}
}

// ErrorResponse 錯誤回應
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
