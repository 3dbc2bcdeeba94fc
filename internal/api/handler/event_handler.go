package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/service"
	"parent-teacher-bridge/backend/pkg/response"
)

// EventHandler 校园活动 HTTP 处理器：教师维护，所有角色可读
type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ListEvents 默认仅返回启用的活动，?all=true 返回全部
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	list, err := h.eventSvc.List(c.Request.Context(), c.Query("all") != "true")
	if err != nil {
		handleEventError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetEvent GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	event, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// CreateEvent POST /api/v1/teacher/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventSvc.Create(c.Request.Context(), teacherID, &req)
	if err != nil {
		handleEventError(c, err)
		return
	}
	response.Created(c, event)
}

// UpdateEvent PUT /api/v1/teacher/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// DeleteEvent DELETE /api/v1/teacher/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.eventSvc.Delete(c.Request.Context(), id); err != nil {
		handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 22001, err.Error())
	case errors.Is(err, service.ErrEventInvalidInterval):
		response.BadRequest(c, 22002, err.Error())
	case errors.Is(err, service.ErrTimetableInvalidTime), errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
