package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member 學員資料模型。只增不改：系統內沒有任何更新或刪除操作。
type Member struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name        string  `json:"name" gorm:"not null;index" binding:"required"` // 學員姓名
	Email       *string `json:"email" gorm:"uniqueIndex"`                      // 電子信箱，存在時唯一
	Affiliation string  `json:"affiliation"`                                   // 所屬單位
	Phone       string  `json:"phone"`                                        // 聯絡電話
}

// TableName 自定義表名
func (Member) TableName() string {
	return "members"
}

// BeforeCreate 產生隨機 UUID 作為主鍵
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// EmailValue 取出信箱字串，空值回傳 ""
func (m *Member) EmailValue() string {
	if m.Email == nil {
		return ""
	}
	return *m.Email
}
