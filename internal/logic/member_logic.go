package logic

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/model"
)

// ErrEmailTaken 信箱已被其他學員使用（唯一索引衝突）
var ErrEmailTaken = errors.New("email 已存在")

// ErrInvalidRange 分頁參數不合法
var ErrInvalidRange = errors.New("skip 與 limit 不可為負數")

// MemberLogic 學員資料業務邏輯
type MemberLogic struct {
	db *gorm.DB
}

// NewMemberLogic 建立學員業務邏輯
func NewMemberLogic(db *gorm.DB) *MemberLogic {
	return &MemberLogic{db: db}
}

// GetMember 依 ID 取得學員，不存在時回傳 nil 而非錯誤
func (m *MemberLogic) GetMember(id string) (*model.Member, error) {
	var member model.Member
	if err := m.db.Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查詢學員失敗: %w", err)
	}
	return &member, nil
}

// GetMemberByEmail 依信箱取得學員，不存在時回傳 nil
func (m *MemberLogic) GetMemberByEmail(email string) (*model.Member, error) {
	var member model.Member
	if err := m.db.Where("email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查詢學員失敗: %w", err)
	}
	return &member, nil
}

// ListMembers 依寫入順序列出學員（支援分頁）
func (m *MemberLogic) ListMembers(skip, limit int) ([]model.Member, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidRange
	}
	var members []model.Member
	if err := m.db.Order("created_at, id").Offset(skip).Limit(limit).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("取得學員列表失敗: %w", err)
	}
	return members, nil
}

// SearchMembers 以關鍵字對姓名或所屬單位做子字串搜尋
func (m *MemberLogic) SearchMembers(keyword string) ([]model.Member, error) {
	var members []model.Member
	pattern := "%" + keyword + "%"
	if err := m.db.Order("created_at, id").
		Where("name LIKE ? OR affiliation LIKE ?", pattern, pattern).
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("搜尋學員失敗: %w", err)
	}
	return members, nil
}

// CountMembers 回傳學員總數
func (m *MemberLogic) CountMembers() (int64, error) {
	var count int64
	if err := m.db.Model(&model.Member{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("統計學員數量失敗: %w", err)
	}
	return count, nil
}

// CreateMember 新增一筆學員資料。信箱為空時存 NULL，
// 唯一索引僅約束非空信箱。
func (m *MemberLogic) CreateMember(name, email, affiliation, phone string) (*model.Member, error) {
	member := model.Member{
		Name:        name,
		Affiliation: affiliation,
		Phone:       phone,
	}
	if email != "" {
		member.Email = &email
	}

	if err := m.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("新增學員失敗: %w", err)
	}
	return &member, nil
}
