package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/logic"
)

type MemberHandler struct {
	memberLogic *logic.MemberLogic
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		memberLogic: logic.NewMemberLogic(db),
	}
}

// CreateMemberRequest 新增學員的請求格式
type CreateMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Phone       string `json:"phone"`
}

// CreateMember 新增學員。信箱已存在時先行回覆 400，
// 比唯一索引的錯誤訊息友善；併發下的索引衝突同樣對應 400。
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email != "" {
		existing, err := h.memberLogic.GetMemberByEmail(req.Email)
		if err != nil {
			ErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		if existing != nil {
			ErrorResponse(c, http.StatusBadRequest, "Email 已存在")
			return
		}
	}

	member, err := h.memberLogic.CreateMember(req.Name, req.Email, req.Affiliation, req.Phone)
	if err != nil {
		if errors.Is(err, logic.ErrEmailTaken) {
			ErrorResponse(c, http.StatusBadRequest, "Email 已存在")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, NewMemberOut(member))
}

// GetMembers 取得學員列表（支援分頁）
func (h *MemberHandler) GetMembers(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的 skip 參數")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的 limit 參數")
		return
	}

	members, err := h.memberLogic.ListMembers(skip, limit)
	if err != nil {
		if errors.Is(err, logic.ErrInvalidRange) {
			ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]MemberOut, 0, len(members))
	for i := range members {
		out = append(out, NewMemberOut(&members[i]))
	}
	c.JSON(http.StatusOK, out)
}
