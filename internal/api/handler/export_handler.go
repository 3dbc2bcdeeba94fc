package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportClassTimetable 导出班级课表
// GET /api/v1/export/timetables/class/:classId
func (h *ExportHandler) ExportClassTimetable(c *gin.Context) {
	classID, ok := ParseIDParam(c, "classId")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportClassTimetable(c.Request.Context(), classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportTeacherCalendar 导出教师课表日历，路径参数允许带 .ics 后缀
// GET /api/v1/export/timetables/teacher/:teacherId
func (h *ExportHandler) ExportTeacherCalendar(c *gin.Context) {
	raw := strings.TrimSuffix(c.Param("teacherId"), ".ics")
	teacherID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || teacherID <= 0 {
		response.BadRequest(c, 10001, "无效的ID")
		return
	}

	data, filename, err := h.exportSvc.ExportTeacherCalendar(c.Request.Context(), teacherID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

// attachment 设置下载响应头
func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTimetable):
		response.NotFound(c, 24001, err.Error())
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13001, err.Error())
	default:
		response.InternalError(c)
	}
}
