// Package web 提供瀏覽器操作介面，對應桌面版的
// 列出／重新整理、搜尋、更新資料庫、匯出 CSV 四個動作。
// 僅作為 logic 與 etl 的薄層消費者。
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/etl"
	"github.com/js051/Course-Management/internal/handler"
	"github.com/js051/Course-Management/internal/logic"
	"github.com/js051/Course-Management/internal/model"
)

//go:embed index.html
var indexHTML []byte

type Handler struct {
	memberLogic *logic.MemberLogic
	pipeline    *etl.Pipeline
	exportPath  string
}

func NewHandler(db *gorm.DB, pipeline *etl.Pipeline, exportPath string) *Handler {
	return &Handler{
		memberLogic: logic.NewMemberLogic(db),
		pipeline:    pipeline,
		exportPath:  exportPath,
	}
}

// Register 掛載 /ui 相關路由
func (h *Handler) Register(r *gin.Engine) {
	ui := r.Group("/ui")
	{
		ui.GET("", h.Index)
		ui.GET("/members", h.Members)
		ui.POST("/import", h.Import)
		ui.POST("/export", h.Export)
	}
}

// Index 主頁面
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Members 列出全部學員，帶 q 參數時改為姓名／單位子字串搜尋
func (h *Handler) Members(c *gin.Context) {
	list, err := h.listMembers(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := make([]handler.MemberOut, 0, len(list))
	for i := range list {
		result = append(result, handler.NewMemberOut(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"members": result, "total": len(result)})
}

func (h *Handler) listMembers(keyword string) ([]model.Member, error) {
	if keyword != "" {
		return h.memberLogic.SearchMembers(keyword)
	}
	total, err := h.memberLogic.CountMembers()
	if err != nil {
		return nil, err
	}
	return h.memberLogic.ListMembers(0, int(total))
}

// Import 觸發一次匯入並回傳統計
func (h *Handler) Import(c *gin.Context) {
	report, err := h.pipeline.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fetched":          report.Fetched,
		"inserted":         report.Inserted,
		"duplicates":       report.Duplicates,
		"skipped_no_email": report.SkippedNoEmail,
		"warnings":         len(report.Warnings),
	})
}

// Export 把學員總表匯出成 CSV（與匯入流程的匯出檔是兩條不同路徑）
func (h *Handler) Export(c *gin.Context) {
	members, err := h.listMembers("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := etl.WriteMembersCSV(h.exportPath, members); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "資料已匯出", "path": h.exportPath})
}
